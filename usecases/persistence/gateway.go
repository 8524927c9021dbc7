package persistence

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"

	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/repositories"
	"github.com/checkmarble/heatmap-backend/utils"
)

type RetryPolicy struct {
	MaxAttempts uint
	// BaseDelay is the wait after the first failure, doubled after each following one.
	BaseDelay time.Duration
	// OperationTimeout bounds every single attempt.
	OperationTimeout time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:      3,
		BaseDelay:        time.Second,
		OperationTimeout: 5 * time.Second,
	}
}

// Gateway runs the dataset store operations with retries on transient failures, and sorts every
// error it returns into the storage error taxonomy.
type Gateway struct {
	store  repositories.DatasetStore
	policy RetryPolicy
	timer  retry.Timer
}

type Option func(*Gateway)

func WithRetryPolicy(policy RetryPolicy) Option {
	return func(g *Gateway) {
		if policy.MaxAttempts < 1 {
			policy.MaxAttempts = 1
		}
		g.policy = policy
	}
}

// WithTimer replaces the clock used to wait between attempts.
func WithTimer(timer retry.Timer) Option {
	return func(g *Gateway) {
		g.timer = timer
	}
}

func NewGateway(store repositories.DatasetStore, options ...Option) *Gateway {
	g := &Gateway{
		store:  store,
		policy: DefaultRetryPolicy(),
	}
	for _, option := range options {
		option(g)
	}
	return g
}

func (g *Gateway) Policy() RetryPolicy {
	return g.policy
}

func withRetry[T any](ctx context.Context, g *Gateway, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	logger := utils.LoggerFromContext(ctx)

	attempt := func() (T, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, g.policy.OperationTimeout)
		defer cancel()
		return fn(attemptCtx)
	}

	options := []retry.Option{
		retry.Attempts(g.policy.MaxAttempts),
		retry.Delay(g.policy.BaseDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(repositories.IsRetryableError),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logger.WarnContext(ctx, "storage operation attempt failed",
				"operation", operation,
				"attempt", n+1,
				"max_attempts", g.policy.MaxAttempts,
				"kind", repositories.ErrorKindOf(err).String(),
				"error", err.Error(),
			)
		}),
	}
	if g.timer != nil {
		options = append(options, retry.WithTimer(g.timer))
	}

	result, err := retry.DoWithData(attempt, options...)
	if err != nil {
		return result, classify(err)
	}
	return result, nil
}

// classifiedError carries the taxonomy sentinel of a storage failure. The sentinel is attached both
// as a mark and through Is, so it matches with either errors package.
type classifiedError struct {
	kind  error
	cause error
}

func (e *classifiedError) Error() string { return e.cause.Error() }

func (e *classifiedError) Unwrap() error { return e.cause }

func (e *classifiedError) Is(target error) bool { return target == e.kind }

func newClassifiedError(err, kind error) error {
	return &classifiedError{kind: kind, cause: errors.Mark(err, kind)}
}

// classify tags an error with its taxonomy sentinel. Not found and validation errors already carry theirs.
func classify(err error) error {
	switch repositories.ErrorKindOf(err) {
	case models.ErrorKindNotFound, models.ErrorKindValidation:
		return err
	case models.ErrorKindTransient:
		return newClassifiedError(err, models.TransientBackendError)
	}
	return newClassifiedError(err, models.FatalBackendError)
}

func (g *Gateway) ListFiles(ctx context.Context) ([]string, error) {
	return withRetry(ctx, g, "list_files", g.store.ListFiles)
}

func (g *Gateway) ListSheets(ctx context.Context, filename string) ([]string, error) {
	return withRetry(ctx, g, "list_sheets", func(ctx context.Context) ([]string, error) {
		return g.store.ListSheets(ctx, filename)
	})
}

func (g *Gateway) GetContent(ctx context.Context, key models.DatasetKey) (string, error) {
	return withRetry(ctx, g, "get_content", func(ctx context.Context) (string, error) {
		return g.store.GetContent(ctx, key)
	})
}

// Save is an upsert, so retrying it after an ambiguous failure is safe.
func (g *Gateway) Save(ctx context.Context, key models.DatasetKey, content string) error {
	_, err := withRetry(ctx, g, "save", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, g.store.Save(ctx, key, content)
	})
	return err
}

func (g *Gateway) Delete(ctx context.Context, filename string) error {
	_, err := withRetry(ctx, g, "delete", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, g.store.Delete(ctx, filename)
	})
	return err
}

// Liveness is not retried.
func (g *Gateway) Liveness(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, g.policy.OperationTimeout)
	defer cancel()
	if err := g.store.Liveness(ctx); err != nil {
		return classify(err)
	}
	return nil
}
