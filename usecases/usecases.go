package usecases

import (
	"github.com/avast/retry-go/v4"

	"github.com/checkmarble/heatmap-backend/repositories"
	"github.com/checkmarble/heatmap-backend/usecases/persistence"
)

type Usecases struct {
	Repositories repositories.Repositories
	gateway      *persistence.Gateway
}

type Option func(*options)

func WithRetryPolicy(policy persistence.RetryPolicy) Option {
	return func(o *options) {
		o.retryPolicy = &policy
	}
}

// WithRetryTimer replaces the clock used between storage retries.
func WithRetryTimer(timer retry.Timer) Option {
	return func(o *options) {
		o.retryTimer = timer
	}
}

type options struct {
	retryPolicy *persistence.RetryPolicy
	retryTimer  retry.Timer
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	gatewayOptions := []persistence.Option{}
	if o.retryPolicy != nil {
		gatewayOptions = append(gatewayOptions, persistence.WithRetryPolicy(*o.retryPolicy))
	}
	if o.retryTimer != nil {
		gatewayOptions = append(gatewayOptions, persistence.WithTimer(o.retryTimer))
	}

	return Usecases{
		Repositories: repositories,
		gateway:      persistence.NewGateway(repositories.DatasetStore, gatewayOptions...),
	}
}

func (usecases *Usecases) NewDatasetUsecase() DatasetUsecase {
	return DatasetUsecase{
		gateway: usecases.gateway,
	}
}

func (usecases *Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{
		gateway: usecases.gateway,
	}
}

func (usecases *Usecases) NewHealthUsecase() HealthUsecase {
	return HealthUsecase{
		gateway: usecases.gateway,
		backend: usecases.Repositories.Backend,
	}
}
