package dto

import (
	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/pure_utils"
)

type HealthStatusResponse struct {
	Healthy bool                       `json:"healthy"`
	Status  []HealthItemStatusResponse `json:"status"`
}

type HealthItemStatusResponse struct {
	Name    string `json:"name"`
	Backend string `json:"backend"`
	IsLive  bool   `json:"is_live"`
}

func AdaptHealthItemStatus(status models.HealthItemStatus) HealthItemStatusResponse {
	return HealthItemStatusResponse{
		Name:    string(status.Name),
		Backend: string(status.Backend),
		IsLive:  status.Status,
	}
}

func AdaptHealthStatus(status models.HealthStatus) HealthStatusResponse {
	return HealthStatusResponse{
		Healthy: status.IsHealthy(),
		Status:  pure_utils.Map(status.Statuses, AdaptHealthItemStatus),
	}
}
