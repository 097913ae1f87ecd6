// Package domainerrors provides coded errors for the vetting domain.
//
// Services return these so transport layers can translate failures into
// stable wire codes without string matching. Stores return sentinel errors
// (pkg/platform/sentinel); services translate them into coded errors at the
// operation boundary.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure. Codes are part of the API contract:
// handlers map them to HTTP statuses and clients branch on them.
type Code string

const (
	// CodeInvalidInput marks malformed or missing caller input, e.g. a
	// document submission without a required expiry date.
	CodeInvalidInput Code = "invalid_input"

	// CodeValidation marks input that parsed but violates a domain rule.
	CodeValidation Code = "validation"

	// CodeInvalidState marks an operation applied to an entity in the wrong
	// state, e.g. reviewing a document that is not pending, or submitting a
	// referral into an occupied slot.
	CodeInvalidState Code = "invalid_state"

	// CodeNotFound marks an unknown carer, credential, or referral ID.
	CodeNotFound Code = "not_found"

	// CodeConflict marks an optimistic-concurrency conflict on write.
	CodeConflict Code = "conflict"

	// CodeBadRequest marks transport-level request problems (bad JSON,
	// missing fields) before domain validation runs.
	CodeBadRequest Code = "bad_request"

	// CodeUnauthorized marks missing or invalid reviewer credentials.
	CodeUnauthorized Code = "unauthorized"

	// CodeForbidden marks an authenticated caller lacking permission.
	CodeForbidden Code = "forbidden"

	// CodeInvariantViolation marks a broken model invariant. Constructors
	// and transition guards return it; services usually re-map it to
	// CodeValidation or CodeInvalidState for the API.
	CodeInvariantViolation Code = "invariant_violation"

	// CodeInternal marks unexpected infrastructure failures.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs a coded error without a cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf constructs a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. The cause stays
// reachable via errors.Is/errors.As.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err or any error in its chain carries code.
func HasCode(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.Err
		e = nil
	}
	return false
}

// Is is an alias for HasCode kept for call-site readability:
// dErrors.Is(err, dErrors.CodeNotFound).
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code in the chain, or CodeInternal when the
// error carries no code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the outermost coded message, or empty when uncoded.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
