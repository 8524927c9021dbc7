package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// TransientBackendError is rendered with the http status code 503
	TransientBackendError = errors.New("storage temporarily unavailable")

	// FatalBackendError is rendered with the http status code 500
	FatalBackendError = errors.New("storage failure")
)

// Upload related errors
var (
	ErrNoFileProvided      = errors.Wrap(BadParameterError, "no file provided")
	ErrUnsupportedFileType = errors.Wrap(BadParameterError, "only CSV and Excel files are allowed")
	ErrEmptyFilename       = errors.Wrap(BadParameterError, "filename is required")
	ErrUnreadableWorkbook  = errors.Wrap(BadParameterError, "workbook could not be read")
	ErrUnknownMetricView   = errors.Wrap(BadParameterError, "unknown metric view")
)

var ErrUnknownStorageBackend = errors.New("unknown storage backend")

// ErrorKind is the taxonomy every storage failure is sorted into before reaching a caller.
type ErrorKind int

const (
	ErrorKindFatal ErrorKind = iota
	ErrorKindTransient
	ErrorKindNotFound
	ErrorKindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTransient:
		return "transient"
	case ErrorKindNotFound:
		return "not_found"
	case ErrorKindValidation:
		return "validation"
	}
	return "fatal"
}
