package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// APIError is a non-2xx response. Msg is the server's {"msg"} text.
type APIError struct {
	Status int
	Msg    string
	kind   error
}

// NewAPIError classifies a response by status.
func NewAPIError(status int, msg string) *APIError {
	e := &APIError{Status: status, Msg: msg}
	switch {
	case status == http.StatusUnauthorized:
		e.kind = ErrUnauthorized
	case status == http.StatusNotFound:
		e.kind = ErrNotFound
	case status >= 500:
		e.kind = ErrUnavailable
	}
	return e
}

func (e *APIError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return e.Msg
}

// Unwrap lets callers match 401, 404 and 5xx responses with errors.Is.
func (e *APIError) Unwrap() error {
	return e.kind
}
