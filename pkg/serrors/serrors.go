// Package serrors implements semantic errors: errors tagged with a category
// sentinel so transport layers can map failures onto status codes without
// inspecting error strings.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is the marker interface of a semantic category sentinel. Sentinels are
// comparable and match through errors.Is on any *Error carrying them.
type Kind interface {
	error
	isKind()
}

type kind struct{ name string }

func (k kind) Error() string { return k.name }
func (k kind) isKind()       {}

// NewKind creates a new category sentinel.
func NewKind(name string) Kind { return kind{name: name} }

// The category sentinels used across the service.
var (
	ErrNotFound     = NewKind("NOT_FOUND")
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	ErrForbidden    = NewKind("FORBIDDEN")
	ErrBadRequest   = NewKind("BAD_REQUEST")
	ErrConflict     = NewKind("CONFLICT")
	ErrInternal     = NewKind("INTERNAL")
	ErrTimeout      = NewKind("TIMEOUT")
	ErrUnavailable  = NewKind("UNAVAILABLE")
	ErrRateLimited  = NewKind("RATE_LIMITED")
)

// Error couples a category sentinel with an optional message and an optional
// wrapped cause. errors.Is and errors.As match against both the sentinel and
// the cause chain.
type Error struct {
	k     Kind
	cause error
	msg   string
}

// With builds an Error from a kind and a formatted message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{k: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap builds an Error from a kind, a cause to wrap and a formatted message.
func Wrap(k Kind, cause error, msgFmt string, args ...any) *Error {
	return &Error{k: k, cause: cause, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly builds an Error carrying nothing but the kind.
func KindOnly(k Kind) *Error { return &Error{k: k} }

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.cause != nil:
		return e.msg + ": " + e.cause.Error()
	case e.msg != "":
		return e.msg
	case e.cause != nil:
		return e.cause.Error()
	case e.k != nil:
		return e.k.Error()
	default:
		return "unknown error"
	}
}

// Unwrap exposes the cause to the errors package.
func (e *Error) Unwrap() error { return e.cause }

// Is matches the target against the kind sentinel first, then the cause chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.k != nil && errors.Is(e.k, target) {
		return true
	}

	return e.cause != nil && errors.Is(e.cause, target)
}

// As matches the target against the kind sentinel first, then the cause chain.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.k != nil && errors.As(e.k, target) {
		return true
	}

	return e.cause != nil && errors.As(e.cause, target)
}

// Kind returns the category sentinel, or nil.
func (e *Error) Kind() Kind { return e.k }

// Message returns the attached message, which may be empty.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause, which may be nil.
func (e *Error) Cause() error { return e.cause }
