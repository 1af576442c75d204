package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is a failed call to the remote service. Status is 0 when no response was received.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return "network error: " + e.Message
	}

	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorMessage extracts a message from a non-2xx body without ever failing.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}

	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}

		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil && detail != "" {
			return detail
		}
	}

	if text := http.StatusText(status); text != "" {
		return text
	}

	return "request failed"
}
