package vault

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure reported by the secret store itself, carrying the status
// code and message the store answered with.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

// NewError builds a store-reported error. An empty message falls back to the
// status text of the code.
func NewError(statusCode int, message string, err error) *Error {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &Error{StatusCode: statusCode, Message: message, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("store responded %d: %s", e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError reports whether err carries a store-reported error with a usable status code.
func AsError(err error) (*Error, bool) {
	var storeErr *Error
	if !errors.As(err, &storeErr) {
		return nil, false
	}
	if storeErr.StatusCode < 100 || storeErr.StatusCode > 599 {
		return nil, false
	}
	return storeErr, true
}
