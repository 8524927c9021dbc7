package dto

type APIErrorResponse struct {
	Message   string    `json:"message"`
	ErrorCode ErrorCode `json:"error_code"`
}

type ErrorCode string

const (
	BadParameter       ErrorCode = "bad_parameter"
	NotFound           ErrorCode = "not_found"
	StorageUnavailable ErrorCode = "storage_unavailable"
	PayloadTooLarge    ErrorCode = "payload_too_large"
	InternalError      ErrorCode = "internal_error"
)
