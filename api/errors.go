package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a remote failure by where it originated.
type Kind string

const (
	KindClient    Kind = "client_error"
	KindServer    Kind = "server_error"
	KindTransport Kind = "transport_error"
)

// Error is the failure of a single remote call. Status is the HTTP status
// code, or 0 when the server was never reached.
type Error struct {
	Status  int
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: %s", e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func kindForStatus(status int) Kind {
	if status >= 500 {
		return KindServer
	}
	return KindClient
}

func genericMessage(status int) string {
	switch {
	case status >= 500:
		return "server error"
	case status == http.StatusUnauthorized:
		return "unauthorized"
	case status == http.StatusNotFound:
		return "not found"
	default:
		return "request failed"
	}
}

// IsUnauthorized reports whether err is a remote 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a remote 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
