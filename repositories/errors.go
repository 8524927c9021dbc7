package repositories

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gocloud.dev/gcerrors"

	"github.com/checkmarble/heatmap-backend/models"
)

// Codes given to failures that do not carry a SQLSTATE of their own.
const (
	CodeTimeout  = "timeout"
	CodeInternal = "internal"
	CodeNotFound = "not_found"
	CodeInvalid  = "invalid_argument"
)

// BackendError is the backend neutral shape of a storage failure.
type BackendError struct {
	Code    string
	Message string
}

// BackendErrorOf reduces any error returned by a storage backend to a code and a message.
func BackendErrorOf(err error) BackendError {
	if err == nil {
		return BackendError{}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return BackendError{Code: pgErr.Code, Message: pgErr.Message}
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return BackendError{Code: CodeTimeout, Message: err.Error()}
	}

	switch gcerrors.Code(err) {
	case gcerrors.DeadlineExceeded:
		return BackendError{Code: CodeTimeout, Message: err.Error()}
	case gcerrors.Internal, gcerrors.ResourceExhausted:
		return BackendError{Code: CodeInternal, Message: err.Error()}
	case gcerrors.NotFound:
		return BackendError{Code: CodeNotFound, Message: err.Error()}
	case gcerrors.InvalidArgument:
		return BackendError{Code: CodeInvalid, Message: err.Error()}
	}

	return BackendError{Message: err.Error()}
}

// ClassifyBackendError is the only place where backend failures are sorted into the error taxonomy.
func ClassifyBackendError(e BackendError) models.ErrorKind {
	switch e.Code {
	case CodeNotFound:
		return models.ErrorKindNotFound
	case CodeInvalid:
		return models.ErrorKindValidation
	case CodeTimeout, CodeInternal,
		pgerrcode.InternalError,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected:
		return models.ErrorKindTransient
	}

	if pgerrcode.IsConnectionException(e.Code) ||
		pgerrcode.IsInsufficientResources(e.Code) ||
		pgerrcode.IsOperatorIntervention(e.Code) {
		return models.ErrorKindTransient
	}

	message := strings.ToLower(e.Message)
	if strings.Contains(message, "timeout") || strings.Contains(message, "terminated") {
		return models.ErrorKindTransient
	}

	return models.ErrorKindFatal
}

// ErrorKindOf classifies an error, trusting sentinels already attached to it.
func ErrorKindOf(err error) models.ErrorKind {
	switch {
	case errors.Is(err, models.NotFoundError):
		return models.ErrorKindNotFound
	case errors.Is(err, models.BadParameterError):
		return models.ErrorKindValidation
	case errors.Is(err, models.TransientBackendError):
		return models.ErrorKindTransient
	case errors.Is(err, models.FatalBackendError), errors.Is(err, context.Canceled):
		return models.ErrorKindFatal
	}
	return ClassifyBackendError(BackendErrorOf(err))
}

func IsRetryableError(err error) bool {
	return err != nil && ErrorKindOf(err) == models.ErrorKindTransient
}
