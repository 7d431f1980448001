package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// fallbackMessage is surfaced when neither the backend nor the transport
// produced a usable message.
const fallbackMessage = "An error occurred"

// Error is the single normalized error shape every API call returns.
// Message follows a fixed precedence: the backend's message field, then
// the transport error text, then a fixed fallback. Status carries the HTTP
// status code for callers that need to classify failures; it is zero when
// the request never completed.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// IsAuthError reports whether err is an authorization-class failure: a 401
// response, or a backend message signalling a rejected credential. These
// are always fatal to the session.
func IsAuthError(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Status == http.StatusUnauthorized {
		return true
	}
	return strings.Contains(apiErr.Message, "Unauthorized") ||
		strings.Contains(apiErr.Message, "Access denied")
}

// newResponseError normalizes a non-2xx response into an Error.
func newResponseError(status int, statusText string, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
	}
	if len(body) > 0 {
		// Ignore decode failures; non-JSON error bodies fall through to
		// the generic message.
		_ = json.Unmarshal(body, &payload)
	}

	message := payload.Message
	if message == "" {
		message = fmt.Sprintf("request failed: %s", statusText)
	}
	if message == "" {
		message = fallbackMessage
	}

	return &Error{Message: message, Status: status}
}

// newTransportError normalizes a failure that never produced a response.
func newTransportError(err error) *Error {
	message := fallbackMessage
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return &Error{Message: message}
}
