// Package apperr defines the failure taxonomy shared by all services.
// Every domain failure carries a stable Kind that the HTTP boundary maps
// to a status code; anything else is treated as Internal.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	NotFound        Kind = "not_found"
	Unavailable     Kind = "unavailable"
	Unauthenticated Kind = "unauthenticated"
	Forbidden       Kind = "forbidden"
	Conflict        Kind = "conflict"
	Validation      Kind = "validation"
	Internal        Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from an error chain, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf returns the caller-visible message for an error. Internal
// failures get a generic message so implementation details never leak.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
