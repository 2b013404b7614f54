// Package dErrors provides coded domain errors.
//
// Services return these so transports can map failures to protocol responses
// without string matching. Stores return sentinel errors (pkg/platform/sentinel)
// which services translate into coded errors at the boundary.
package dErrors

import (
	"errors"
	"fmt"
)

// Code identifies the failure class of a domain error.
type Code string

const (
	// CodeInvalidInput marks a request that fails validation; the target
	// entity is left unchanged.
	CodeInvalidInput Code = "invalid_input"

	// CodeBadRequest marks a structurally malformed request.
	CodeBadRequest Code = "bad_request"

	// CodeUnauthorized marks a request with no resolved actor.
	CodeUnauthorized Code = "unauthorized"

	// CodeForbidden marks a request whose actor lacks the required role.
	CodeForbidden Code = "forbidden"

	// CodeNotFound marks a missing referent an operation cannot proceed without.
	CodeNotFound Code = "not_found"

	// CodeConflict marks an operation refused because of the entity's current
	// state, e.g. finalizing an already-finalized report.
	CodeConflict Code = "conflict"

	// CodeInvariantViolation marks a state transition the model forbids.
	CodeInvariantViolation Code = "invariant_violation"

	// CodeUnavailable marks a persistence or downstream failure worth retrying.
	CodeUnavailable Code = "unavailable"

	// CodeInternal marks everything else; details stay out of responses.
	CodeInternal Code = "internal"
)

// Error is a coded domain error. Construct with New or Wrap.
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

func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for plain errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the safe-to-expose message from err; empty for plain errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
