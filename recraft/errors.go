package recraft

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingToken is returned before any request is made when no bearer token is configured.
	ErrMissingToken = errors.New("API token not available")
	// ErrInvalidResponse is returned when a 2xx body has no data[0].url.
	ErrInvalidResponse = errors.New("Invalid response format from API")
)

// APIError is a non-2xx answer from the transformation API. Message is already
// human readable and is what the user sees.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error, enabling errors.Is and errors.As
func (e *APIError) Unwrap() error {
	return e.Err
}

func statusMessage(code int) string {
	return fmt.Sprintf("API request failed with status %d", code)
}

// NewAPIError builds an APIError, falling back to the generic status message
// when message is empty.
func NewAPIError(code int, message string, err error) *APIError {
	if message == "" {
		message = statusMessage(code)
	}
	return &APIError{StatusCode: code, Message: message, Err: err}
}
