package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/checkmarble/heatmap-backend/dto"
	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/usecases"
)

func handleGetHeatmap(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var query dto.DatasetQuery
		if err := c.ShouldBindUri(&query); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}
		var heatmapQuery dto.HeatmapQuery
		if err := c.ShouldBindQuery(&heatmapQuery); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		view, ok := models.MetricViewFrom(heatmapQuery.View)
		if !ok {
			presentError(ctx, c, errors.Wrapf(models.ErrUnknownMetricView, "%q", heatmapQuery.View))
			return
		}

		usecase := uc.NewDatasetUsecase()
		heatmap, err := usecase.GetHeatmap(ctx, models.DatasetKey{
			Filename: query.Filename,
			Sheet:    heatmapQuery.Sheet,
		}, view)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptHeatmapDto(heatmap))
	}
}
