// Package apperr defines the error type shared by eyestrain packages
package apperr

import (
	"errors"
	"fmt"
)

// Error is an application error. Package-level values act as templates:
// Fmt and Wrap return copies that still match the template with errors.Is.
type Error struct {
	Cause   error
	tmpl    *Error
	Message string
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return e.Message + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is e or the template e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t == e || t == e.tmpl
}

// Fmt formats the message of the error template with the provided values.
func (e *Error) Fmt(v ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, v...),
		Cause:   e.Cause,
		tmpl:    e.root(),
	}
}

// Wrap attaches err as the cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		Cause:   err,
		tmpl:    e.root(),
	}
}

func (e *Error) root() *Error {
	if e.tmpl != nil {
		return e.tmpl
	}

	return e
}

// As is a shorthand for errors.As with an *Error target.
func As(err error) (*Error, bool) {
	var e *Error

	ok := errors.As(err, &e)

	return e, ok
}
