// Package apperror defines the errors that reach API clients.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an application error
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Status returns the HTTP status for the kind.
// Forbidden maps to 401 and Conflict to 400; there is no 403 or 409 tier.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized, KindForbidden:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "Bad Request"
	case KindUnauthorized, KindForbidden:
		return "Unauthorized"
	case KindNotFound:
		return "Not Found"
	case KindConflict:
		return "Conflict"
	default:
		return "Internal Server Error"
	}
}

// Error is an error with a client-facing message
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Status returns the HTTP status code for e
func (e *Error) Status() int {
	return e.Kind.Status()
}

// Response is the JSON body sent to clients: {"error": {"message", "status"}}
func (e *Error) Response() map[string]any {
	return map[string]any{
		"error": map[string]any{
			"message": e.Message,
			"status":  e.Status(),
		},
	}
}

// Internal is the response for errors that are not *Error
func Internal() *Error {
	return &Error{Message: "Internal Server Error"}
}

func newError(kind Kind, msg string) *Error {
	if msg == "" {
		msg = kind.String()
	}
	return &Error{Kind: kind, Message: msg}
}

func Validation(msg string) *Error   { return newError(KindValidation, msg) }
func Unauthorized(msg string) *Error { return newError(KindUnauthorized, msg) }
func Forbidden(msg string) *Error    { return newError(KindForbidden, msg) }
func NotFound(msg string) *Error     { return newError(KindNotFound, msg) }
func Conflict(msg string) *Error     { return newError(KindConflict, msg) }

// IsKind reports whether err wraps an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
