package remote

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

// Error is a failed backend call. It unwraps to domain.ErrUnauthorized when
// the backend rejected the bearer credential, and to domain.ErrRemote
// otherwise.
type Error struct {
	Endpoint     string
	Status       int
	Message      string
	Unauthorized bool
	Cause        error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s: %v", e.Endpoint, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %d %s", e.Endpoint, e.Status, e.Message)
}

func (e *Error) Unwrap() []error {
	kind := domain.ErrRemote
	if e.Unauthorized {
		kind = domain.ErrUnauthorized
	}
	if e.Cause != nil {
		return []error{kind, e.Cause}
	}
	return []error{kind}
}

// errorBody covers the error shapes the backend is known to return.
type errorBody struct {
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

// messageFrom extracts a human readable message from an error response.
func messageFrom(status int, body []byte) string {
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if len(eb.Error) > 0 {
			var s string
			if json.Unmarshal(eb.Error, &s) == nil && s != "" {
				return s
			}
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(eb.Error, &nested) == nil && nested.Message != "" {
				return nested.Message
			}
		}
	}

	text := strings.TrimSpace(string(body))
	if text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") && !strings.HasPrefix(text, "{") {
		return text
	}
	if st := http.StatusText(status); st != "" {
		return st
	}
	return "request failed"
}

// HTTPStatus is the backend status code, 0 when no response was received.
func (e *Error) HTTPStatus() int { return e.Status }

// UserMessage is the message safe to show to the visitor.
func (e *Error) UserMessage() string {
	if e.Status == 0 {
		return "The registration service is unavailable. Please try again later."
	}
	return e.Message
}
