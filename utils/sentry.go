package utils

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
)

func isCanceledOrTimedOut(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// LogAndReportSentryError logs the error with its stack and sends it to Sentry, except when the
// request context was canceled or ran out of time.
func LogAndReportSentryError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := LoggerFromContext(ctx)
	logger.ErrorContext(ctx, fmt.Sprintf("%+v", err))

	if isCanceledOrTimedOut(err) {
		logger.DebugContext(ctx, "not reporting a canceled or timed out operation to sentry")
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("root_error_type", fmt.Sprintf("%T", errors.UnwrapAll(err)))
		hub.CaptureException(err)
	})
}
