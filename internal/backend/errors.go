package backend

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: HTTP %d: %s", e.Status, e.Message)
}

// UserMessage is the text to show the player.
func (e *APIError) UserMessage() string { return e.Message }

// newAPIError prefers the "message" of a JSON object body, then a plain-text
// body, then the status text.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	trimmed := bytes.TrimSpace(body)

	var obj map[string]any
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := jsonAPI.Unmarshal(trimmed, &obj); err == nil {
			if msg, ok := obj["message"].(string); ok && strings.TrimSpace(msg) != "" {
				e.Message = strings.TrimSpace(msg)
			}
		}
	} else if len(trimmed) > 0 {
		e.Message = truncate(string(trimmed), 200)
	}

	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("HTTP %d", status)
	}
	return e
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
