// Package fault defines the error taxonomy shared by the services and the
// HTTP layer. Every error that crosses a service boundary carries a Kind so
// handlers can map it to a status code without string matching.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a service error.
type Kind string

const (
	// NotFound: the requested range or month has no underlying rows.
	NotFound Kind = "NOT_FOUND"
	// InvalidArgument: a parameter only the business layer can reject
	// (e.g. an unknown price type).
	InvalidArgument Kind = "INVALID_ARGUMENT"
	// Unavailable: the data store could not be reached. Propagated as-is,
	// never retried here.
	Unavailable Kind = "DATA_UNAVAILABLE"
	// SchemaMismatch: the store answered but a row did not decode into the
	// expected record shape.
	SchemaMismatch Kind = "SCHEMA_MISMATCH"
)

// Error is a classified error. Cause is optional.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error. If cause is
// already a classified error its kind is preserved.
func Wrap(cause error, kind Kind, format string, args ...any) *Error {
	var fe *Error
	if errors.As(cause, &fe) {
		kind = fe.Kind
	}
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf reports the kind of err, or "" if err is not classified.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool { return KindOf(err) == kind }
