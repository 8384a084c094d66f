// Package domainerrors provides coded errors that services return and the
// HTTP layer maps to status codes. Stores stay on pkg/sentinel; services
// wrap store errors with a code here so handlers never inspect raw errors.
package domainerrors

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeInvalidInput     Code = "invalid_input"
	CodeNotFound         Code = "not_found"
	CodeConflict         Code = "conflict"
	CodeAlreadyConfirmed Code = "already_confirmed"
	CodeRateLimited      Code = "rate_limited"
	CodeInternal         Code = "internal"
)

// Error carries a machine-readable code and a user-safe message. The wrapped
// cause, if any, is for logs only and must not reach API responses.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}

// CodeFor extracts the code from err, defaulting to CodeInternal for
// uncoded errors so unexpected failures never leak detail upward.
func CodeFor(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageFor extracts the user-safe message from err. Uncoded errors get a
// generic message; their detail belongs in logs, not responses.
func MessageFor(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}
