package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Custom error types for the application
var (
	ErrMissingInput      = errors.New("missing required input")
	ErrTransport         = errors.New("transport error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrBackendReported   = errors.New("backend reported error")
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("resource not found")
	ErrInternal          = errors.New("internal error")
)

// AppError represents an application error with additional context
type AppError struct {
	Err        error  // The underlying error
	StatusCode int    // HTTP status code associated with the failure, if any
	Message    string // User-friendly error message
	DevInfo    string // Additional information for developers
	Field      string // Field related to the error (for validation errors)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewMissingInputError creates an error for a stage attempted without a
// required precondition. It is raised before any network call is made.
func NewMissingInputError(what string) *AppError {
	return &AppError{
		Err:        ErrMissingInput,
		StatusCode: http.StatusBadRequest,
		Message:    what,
	}
}

// NewTransportError creates an error for a non-success HTTP status. The
// status code is embedded in the message.
func NewTransportError(statusCode int) *AppError {
	return &AppError{
		Err:        ErrTransport,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("Request failed with status %d", statusCode),
	}
}

// NewMalformedResponseError creates an error for a response body that failed
// to parse as JSON. Stages convert this into a sentinel error object rather
// than propagating it, so it mostly appears as the message of a backend
// error surfaced to the user.
func NewMalformedResponseError(statusCode int) *AppError {
	return &AppError{
		Err:        ErrMalformedResponse,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("Invalid JSON response (status %d)", statusCode),
	}
}

// NewBackendError creates an error from an explicit error field in a parsed
// backend response.
func NewBackendError(message string) *AppError {
	return &AppError{
		Err:     ErrBackendReported,
		Message: message,
	}
}

// NewValidationError creates a new validation error for a specific field
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Field:      field,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resourceType string, identifier interface{}) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier),
	}
}

// NewInternalError creates a new internal error wrapping the cause
func NewInternalError(err error) *AppError {
	devInfo := ""
	if err != nil {
		devInfo = err.Error()
	}
	return &AppError{
		Err:        ErrInternal,
		StatusCode: http.StatusInternalServerError,
		Message:    "An internal error occurred",
		DevInfo:    devInfo,
	}
}

// ParseError attempts to parse various types of errors into an AppError
func ParseError(err error) *AppError {
	// If it's already an AppError, return it
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrMissingInput):
		return NewMissingInputError(err.Error())
	case errors.Is(err, ErrTransport):
		return &AppError{Err: ErrTransport, Message: err.Error()}
	case errors.Is(err, ErrBackendReported):
		return NewBackendError(err.Error())
	case errors.Is(err, ErrValidation):
		return NewValidationError("", err.Error())
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError("Resource", "")
	}

	return NewInternalError(err)
}

// IsMissingInputError checks if an error is a missing input error
func IsMissingInputError(err error) bool {
	return errors.Is(err, ErrMissingInput)
}

// IsTransportError checks if an error is a transport error
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsBackendError checks if an error is a backend-reported error
func IsBackendError(err error) bool {
	return errors.Is(err, ErrBackendReported)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// StatusCode returns the HTTP status code for an error
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
