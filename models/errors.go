package models

import "errors"

// ErrorCode classifies a domain error so the transport layer can map it
// to a response status without inspecting messages.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// AppError is the error type every service returns. Message is safe to
// show to clients; Err carries the underlying cause, if any.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewError creates an AppError with the given code and message.
func NewError(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// WrapError creates an AppError wrapping an underlying cause.
func WrapError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NotFoundError reports a missing resource.
func NotFoundError(message string) *AppError {
	return NewError(ErrCodeNotFound, message)
}

// ValidationError reports malformed or rule-breaking input.
func ValidationError(message string) *AppError {
	return NewError(ErrCodeInvalid, message)
}

// ForbiddenError reports a permission denial.
func ForbiddenError(message string) *AppError {
	return NewError(ErrCodeForbidden, message)
}

// InternalError wraps an unexpected failure, typically from storage.
func InternalError(err error) *AppError {
	return WrapError(ErrCodeInternal, "internal error", err)
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
