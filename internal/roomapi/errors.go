package roomapi

import (
	"errors"
	"fmt"
)

// APIError is an application error reported by the room service
type APIError struct {
	Status int
	// Message is the server's "error" field; empty when the server sent none
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return e.Message
}

// TransportError is a network-level failure; no response was received
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text to show a user for err.
// Server-provided messages are returned verbatim; anything else gets fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
