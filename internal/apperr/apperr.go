// Package apperr defines the tagged error taxonomy shared by the
// validation, repository, and API layers. Every failure that should reach
// a client is wrapped as an *Error carrying an HTTP status and a kind
// string; anything else is treated as unclassified and answered with a
// generic 500.
package apperr

import (
	"net/http"
)

// Kind strings used in the "error" field of every error response body.
const (
	KindBadRequest       = "Bad Request"
	KindNotFound         = "Not Found"
	KindUnauthorised     = "Unauthorised"
	KindMethodNotAllowed = "Method Not Allowed"
	KindInternal         = "Internal Server Error"
)

// Error is the canonical error type for the API. Msg is safe to return to
// the client; Cause is for server-side logging only.
type Error struct {
	Status int
	Kind   string
	Msg    string
	Cause  error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Kind + ": " + e.Msg
	}
	return e.Kind
}

// Unwrap allows errors.Is and errors.As to traverse the cause chain
func (e *Error) Unwrap() error {
	return e.Cause
}

// BadRequest creates a 400 validation error
func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Kind: KindBadRequest, Msg: msg}
}

// NotFound creates a 404 error for a missing entity
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Kind: KindNotFound, Msg: msg}
}

// Unauthorised creates a 401 error
func Unauthorised() *Error {
	return &Error{Status: http.StatusUnauthorized, Kind: KindUnauthorised}
}

// Internal wraps an unexpected error; the cause is never sent to clients
func Internal(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Kind: KindInternal, Cause: cause}
}
