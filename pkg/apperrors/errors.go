// Package apperrors carries the pipeline's error taxonomy. Services
// return kinded errors; the HTTP layer maps kinds to status codes.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Unknown Kind = iota
	Unauthorized
	Forbidden
	NotFound
	InvalidState
	InvalidArgument
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case InvalidState:
		return "invalid_state"
	case InvalidArgument:
		return "invalid_argument"
	case Conflict:
		return "conflict"
	}
	return "unknown"
}

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

func New(kind Kind, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind Kind, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) error {
	return &Error{kind: kind, msg: msg, err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return Unknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
