package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	t.Run("Message only", func(t *testing.T) {
		err := NewBackendError("font not available")
		assert.Equal(t, "font not available", err.Error())
	})

	t.Run("Field prefixed", func(t *testing.T) {
		err := NewValidationError("w", "Width is required")
		assert.Equal(t, "w: Width is required", err.Error())
	})
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		sentinel   error
		statusCode int
		message    string
	}{
		{
			name:       "Missing input",
			err:        NewMissingInputError("Choose an image first"),
			sentinel:   ErrMissingInput,
			statusCode: http.StatusBadRequest,
			message:    "Choose an image first",
		},
		{
			name:       "Transport",
			err:        NewTransportError(http.StatusBadGateway),
			sentinel:   ErrTransport,
			statusCode: http.StatusBadGateway,
			message:    "Request failed with status 502",
		},
		{
			name:       "Malformed response",
			err:        NewMalformedResponseError(http.StatusOK),
			sentinel:   ErrMalformedResponse,
			statusCode: http.StatusOK,
			message:    "Invalid JSON response (status 200)",
		},
		{
			name:     "Backend reported",
			err:      NewBackendError("unsupported format"),
			sentinel: ErrBackendReported,
			message:  "unsupported format",
		},
		{
			name:       "Not found",
			err:        NewNotFoundError("File", "/tmp/cat.png"),
			sentinel:   ErrNotFound,
			statusCode: http.StatusNotFound,
			message:    "File with identifier '/tmp/cat.png' not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			assert.Equal(t, tt.statusCode, tt.err.StatusCode)
			assert.Equal(t, tt.message, tt.err.Message)
		})
	}
}

func TestNewInternalError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalError(cause)

	assert.True(t, errors.Is(err, ErrInternal))
	assert.Equal(t, "An internal error occurred", err.Message)
	assert.Equal(t, "disk full", err.DevInfo)
}

func TestParseError(t *testing.T) {
	t.Run("AppError passes through", func(t *testing.T) {
		orig := NewTransportError(http.StatusBadGateway)
		assert.Same(t, orig, ParseError(orig))
	})

	t.Run("Wrapped sentinel is classified", func(t *testing.T) {
		err := fmt.Errorf("%w: POST /upload/: connection refused", ErrTransport)

		parsed := ParseError(err)

		assert.True(t, errors.Is(parsed, ErrTransport))
		assert.Contains(t, parsed.Message, "connection refused")
	})

	t.Run("Unknown error becomes internal", func(t *testing.T) {
		parsed := ParseError(errors.New("boom"))

		assert.True(t, errors.Is(parsed, ErrInternal))
		assert.Equal(t, "boom", parsed.DevInfo)
	})
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusCode(NewNotFoundError("File", "x")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(NewBackendError("no status attached")))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsMissingInputError(NewMissingInputError("x")))
	assert.True(t, IsTransportError(NewTransportError(500)))
	assert.True(t, IsBackendError(NewBackendError("x")))
	assert.True(t, IsValidationError(NewValidationError("f", "x")))
	assert.False(t, IsTransportError(NewBackendError("x")))
}
