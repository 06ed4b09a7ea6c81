package game

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies engine failures for the transport layer.
type ErrorCode int

const (
	// CodeNotFound means the session or player does not exist.
	CodeNotFound ErrorCode = iota
	// CodeForbidden means the requester may not perform the action
	// (non-host host action, acting out of turn).
	CodeForbidden
	// CodeIllegalMove is a state-machine or validator rejection. Expected
	// and user-facing; state is never mutated.
	CodeIllegalMove
	// CodeConflict is a structural mismatch, e.g. a reorder payload that
	// does not match the player set.
	CodeConflict
	// CodeInternal is a storage or invariant failure.
	CodeInternal
)

// String returns the string representation of an error code
func (c ErrorCode) String() string {
	switch c {
	case CodeNotFound:
		return "not_found"
	case CodeForbidden:
		return "forbidden"
	case CodeIllegalMove:
		return "illegal_move"
	case CodeConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// HTTPStatus maps the code onto an HTTP status for the JSON layer.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeIllegalMove:
		return http.StatusUnprocessableEntity
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a code and a human-readable reason back to the caller.
type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFoundf builds a not-found error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Reason: fmt.Sprintf(format, args...)}
}

// Forbiddenf builds a forbidden error.
func Forbiddenf(format string, args ...any) *Error {
	return &Error{Code: CodeForbidden, Reason: fmt.Sprintf(format, args...)}
}

// IllegalMovef builds an illegal-move rejection.
func IllegalMovef(format string, args ...any) *Error {
	return &Error{Code: CodeIllegalMove, Reason: fmt.Sprintf(format, args...)}
}

// Conflictf builds a conflict error.
func Conflictf(format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Reason: fmt.Sprintf(format, args...)}
}

// Internalf wraps an unexpected failure.
func Internalf(err error, format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Reason: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf extracts the error code, defaulting to internal for plain errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// ReasonOf extracts the user-facing reason from an engine error.
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return "internal error"
}
