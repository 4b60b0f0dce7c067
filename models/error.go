package models

import "errors"

// Request-validation errors the handlers raise before the codec is
// ever invoked (missing fields, oversized uploads, unrecognized format
// tag, out-of-range depth). Codec-internal errors are carried as *stego.Error
// instead, since they need structured data (see api.sendStegoError).
var (
	ErrMissingFile       = errors.New("the file field is required")
	ErrMissingPassword   = errors.New("the password field is required")
	ErrMissingMessage    = errors.New("the message field is required")
	ErrMissingFormat     = errors.New("the format field is required")
	ErrInvalidLsbDeep    = errors.New("lsb_deep must be between 1 and 16")
	ErrFileTooLarge      = errors.New("file size exceeds maximum allowed limit")
	ErrUnsupportedFormat = errors.New(`unsupported format, only "wav16" is recognized`)
)

// ErrorResponse is the standardized JSON error body.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
