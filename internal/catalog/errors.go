package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const defaultErrorMessage = "Request failed"

// RequestError reports a non-2xx response.
type RequestError struct {
	Message string
	Status  int
	// Payload holds the decoded body, nil when the body was not JSON.
	Payload json.RawMessage
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	return 0
}

// IsConflict reports whether err is a 409 response.
func IsConflict(err error) bool {
	return StatusOf(err) == http.StatusConflict
}

// MessageOf returns the user-facing message of a RequestError, or fallback
// for any other error.
func MessageOf(err error, fallback string) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}

// errorMessage picks the message for a failed response: payload message,
// then payload error, then the status text, then a generic default.
func errorMessage(payload json.RawMessage, statusText string) string {
	if len(payload) > 0 {
		var body messagePayload
		if err := json.Unmarshal(payload, &body); err == nil {
			if body.Message != "" {
				return body.Message
			}
			if body.Error != "" {
				return body.Error
			}
		}
	}
	if statusText != "" {
		return statusText
	}
	return defaultErrorMessage
}
