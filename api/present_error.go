package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/checkmarble/heatmap-backend/dto"
	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/utils"
)

func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	logger := utils.LoggerFromContext(ctx)
	switch {
	case errors.Is(err, models.BadParameterError):
		logger.InfoContext(ctx, fmt.Sprintf("BadParameterError: %v", err))
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{
			Message:   err.Error(),
			ErrorCode: dto.BadParameter,
		})

	case errors.Is(err, models.NotFoundError):
		logger.InfoContext(ctx, fmt.Sprintf("NotFoundError: %v", err))
		c.JSON(http.StatusNotFound, dto.APIErrorResponse{
			Message:   "File not found",
			ErrorCode: dto.NotFound,
		})

	case errors.Is(err, models.TransientBackendError):
		logger.WarnContext(ctx, fmt.Sprintf("TransientBackendError: %v", err))
		c.Header("Retry-After", "5")
		c.JSON(http.StatusServiceUnavailable, dto.APIErrorResponse{
			Message:   "The storage is temporarily unavailable, please try again later",
			ErrorCode: dto.StorageUnavailable,
		})

	default:
		utils.LogAndReportSentryError(ctx, err)
		c.JSON(http.StatusInternalServerError, dto.APIErrorResponse{
			Message:   "An unexpected error occurred. Please try again later, or contact support if the problem persists.",
			ErrorCode: dto.InternalError,
		})
	}
	return true
}
