// Package apperr carries the error taxonomy shared by all workflows. Every
// failure surfaced to a caller is classified so that authentication problems,
// missing data and dependency outages stay distinguishable end to end.
package apperr

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindDependency:
		return "dependency"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	// Origin names the failed collaborator for dependency errors
	// (database, template, mail, cache).
	Origin string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Dependency tags a collaborator failure with its origin.
func Dependency(origin, msg string, err error) *Error {
	return &Error{Kind: KindDependency, Origin: origin, Msg: msg, Err: err}
}

// KindOf classifies any error, returning KindUnknown for errors that did not
// come out of this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the caller-safe message of a classified error. Unclassified
// errors yield a generic message so internals never leak to clients.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal error"
}
