// Package apperr defines the typed errors services raise and the HTTP layer
// maps onto responses. Anything that is not an *apperr.Error surfaces as a
// generic 500 with no internals exposed.
package apperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int
	Message string
	// Fields carries per-field validation messages for 400 responses.
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Validation is a 400 carrying field-level messages.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Fields: fields}
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// From extracts the typed error, if err carries one.
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsNotFound reports whether err is a typed 404.
func IsNotFound(err error) bool {
	e, ok := From(err)
	return ok && e.Status == http.StatusNotFound
}
