// JSON response helpers used by the local web UI server for its own
// endpoints. Proxied backend responses are streamed through unchanged and
// never pass through these helpers.

package utils

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/wmlab/robustwm/internal/constants"
)

// ErrorInfo represents error information in a web UI response.
type ErrorInfo struct {
	Code    string `json:"code"`    // A machine-readable error code
	Message string `json:"message"` // A human-readable error message
}

// JSON sends a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// Error sends a JSON error response with the given status code and message.
func Error(w http.ResponseWriter, statusCode int, code, message string) {
	JSON(w, statusCode, map[string]*ErrorInfo{
		"error": {Code: code, Message: message},
	})
}
