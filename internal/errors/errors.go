// Package errors provides the application error model shared by the
// extraction engine and the HTTP transport. Engine code wraps failures
// in AppError with a stable type string; the transport converts them to
// RFC 7807 problem responses.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an error for logging and HTTP mapping.
type ErrorType string

const (
	// ErrTypeValidation indicates invalid caller input (bad date, bad upload).
	ErrTypeValidation ErrorType = "validation"
	// ErrTypeParsing indicates the workbook could not be decoded or read.
	ErrTypeParsing ErrorType = "parsing"
	// ErrTypeNotFound indicates a missing resource (sheet, file, route).
	ErrTypeNotFound ErrorType = "not_found"
	// ErrTypeConfig indicates invalid or incomplete configuration.
	ErrTypeConfig ErrorType = "config"
	// ErrTypeInternal indicates an unexpected server-side failure.
	ErrTypeInternal ErrorType = "internal"
)

// AppError is the canonical application error. It carries a type for
// classification, a caller-facing message, the wrapped cause, and
// free-form context for structured logging.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped cause, enabling errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair for structured logging.
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// HTTPStatus maps the error type to an HTTP status code.
func (e *AppError) HTTPStatus() int {
	switch e.Type {
	case ErrTypeValidation:
		return http.StatusBadRequest
	case ErrTypeParsing:
		return http.StatusUnprocessableEntity
	case ErrTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error for invalid caller input.
func NewValidationError(message string, cause error) *AppError {
	return &AppError{Type: ErrTypeValidation, Message: message, Cause: cause}
}

// NewParsingError creates a parsing error for unreadable workbook data.
func NewParsingError(message string, cause error) *AppError {
	return &AppError{Type: ErrTypeParsing, Message: message, Cause: cause}
}

// NewNotFoundError creates a not-found error for a named resource.
func NewNotFoundError(resource string) *AppError {
	return &AppError{Type: ErrTypeNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *AppError {
	return &AppError{Type: ErrTypeConfig, Message: message, Cause: cause}
}

// NewInternalError creates an internal error wrapping an unexpected failure.
func NewInternalError(message string, cause error) *AppError {
	return &AppError{Type: ErrTypeInternal, Message: message, Cause: cause}
}

// AsAppError extracts an *AppError from err's chain if present.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
