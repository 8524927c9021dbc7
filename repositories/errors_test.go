package repositories

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/checkmarble/heatmap-backend/models"
)

func TestClassifyBackendError(t *testing.T) {
	type testCase struct {
		name  string
		input BackendError
		want  models.ErrorKind
	}

	cases := []testCase{
		{"generic internal error", BackendError{Code: "XX000", Message: "internal"}, models.ErrorKindTransient},
		{"connection exception class", BackendError{Code: "08006", Message: "connection failure"}, models.ErrorKindTransient},
		{"too many connections", BackendError{Code: "53300"}, models.ErrorKindTransient},
		{"statement canceled", BackendError{Code: "57014"}, models.ErrorKindTransient},
		{"admin shutdown", BackendError{Code: "57P01"}, models.ErrorKindTransient},
		{"serialization failure", BackendError{Code: "40001"}, models.ErrorKindTransient},
		{"timeout in message", BackendError{Message: "query read timeout"}, models.ErrorKindTransient},
		{"terminated in message", BackendError{Message: "Connection terminated unexpectedly"}, models.ErrorKindTransient},
		{"neutral timeout", BackendError{Code: CodeTimeout}, models.ErrorKindTransient},
		{"neutral internal", BackendError{Code: CodeInternal}, models.ErrorKindTransient},
		{"unique violation", BackendError{Code: "23505", Message: "duplicate key"}, models.ErrorKindFatal},
		{"syntax error", BackendError{Code: "42601", Message: "syntax error"}, models.ErrorKindFatal},
		{"unknown", BackendError{Message: "boom"}, models.ErrorKindFatal},
		{"not found", BackendError{Code: CodeNotFound}, models.ErrorKindNotFound},
		{"invalid argument", BackendError{Code: CodeInvalid}, models.ErrorKindValidation},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ClassifyBackendError(c.input))
		})
	}
}

func TestBackendErrorOf(t *testing.T) {
	t.Run("postgres error keeps its SQLSTATE", func(t *testing.T) {
		err := errors.Wrap(&pgconn.PgError{Code: "XX000", Message: "internal"}, "query failed")
		assert.Equal(t, BackendError{Code: "XX000", Message: "internal"}, BackendErrorOf(err))
	})

	t.Run("deadline", func(t *testing.T) {
		err := errors.Wrap(context.DeadlineExceeded, "acquire connection")
		assert.Equal(t, CodeTimeout, BackendErrorOf(err).Code)
	})

	t.Run("plain error keeps its message", func(t *testing.T) {
		assert.Equal(t, BackendError{Message: "boom"}, BackendErrorOf(errors.New("boom")))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, BackendError{}, BackendErrorOf(nil))
	})
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, IsRetryableError(&pgconn.PgError{Code: "XX000"}))
	assert.True(t, IsRetryableError(errors.New("connection terminated")))
	assert.True(t, IsRetryableError(context.DeadlineExceeded))
	assert.False(t, IsRetryableError(nil))
	assert.False(t, IsRetryableError(models.NotFoundError))
	assert.False(t, IsRetryableError(errors.Wrap(models.BadParameterError, "bad file")))
	assert.False(t, IsRetryableError(context.Canceled))
	assert.False(t, IsRetryableError(&pgconn.PgError{Code: "23505", Message: "duplicate key"}))
	// an error already marked fatal is not reconsidered
	assert.False(t, IsRetryableError(errors.Mark(errors.New("timeout"), models.FatalBackendError)))
}
