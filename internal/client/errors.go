package client

import (
	"fmt"
	"strings"
)

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		body = "Unknown error"
	}
	return fmt.Sprintf("Server error: %s (Status: %d)", body, e.Code)
}

// DecodeError is returned when a 2xx body is not valid JSON.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
