package usecases

import (
	"context"
	"log/slog"

	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/utils"
)

type HealthUsecase struct {
	gateway livenessGateway
	backend models.StorageBackend
}

func (u *HealthUsecase) GetHealthStatus(ctx context.Context) models.HealthStatus {
	err := u.gateway.Liveness(ctx)
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx, "storage health check failed",
			slog.String("backend", string(u.backend)), slog.Any("error", err))
	}

	return models.HealthStatus{
		Statuses: []models.HealthItemStatus{{
			Name:    models.StorageHealthItemName,
			Backend: u.backend,
			Status:  err == nil,
		}},
	}
}
