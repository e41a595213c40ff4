package apperr

import (
	"errors"
	"net/http"
)

// Error is a domain failure carrying the HTTP status it should render as.
// Services return these; the HTTP layer maps everything else to a 500.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an Error with an explicit status.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Validation marks malformed or rejected input.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// NotFound marks a missing entity.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Conflict marks a duplicate identity. The API renders it as 400 to stay
// wire-compatible with existing clients, even though 409 would be the
// better fit.
func Conflict(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthorized marks a missing or invalid credential.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Forbidden marks an authenticated caller without sufficient rights.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// Internal marks an unexpected store, queue, or transport failure.
func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// From coerces err into an *Error, wrapping unknown errors as a 500 so the
// responder never leaks internals to the client.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error")
}
