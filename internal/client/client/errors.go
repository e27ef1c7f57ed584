package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable means the request went out but no response came back.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnexpectedResponse means the server answered with a success status
	// but a body the client cannot use.
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// ResponseError is returned when the server answers with an error status.
// Message is the "message" field of the body, if any, meant for the user.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server responded %d: %s", e.StatusCode, e.Message)
}
