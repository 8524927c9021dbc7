package usecases

import (
	"context"
)

type livenessGateway interface {
	Liveness(ctx context.Context) error
}

type LivenessUsecase struct {
	gateway livenessGateway
}

func (u *LivenessUsecase) Liveness(ctx context.Context) error {
	return u.gateway.Liveness(ctx)
}
