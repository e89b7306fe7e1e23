// Package lifecycle implements the booking lifecycle engine: the rules
// governing how a booking moves between states and what each transition
// requires and produces.  The engine performs every precondition check
// itself so the guarantees hold regardless of the caller; it does not
// rely on any presentation-layer gating.
package lifecycle

import (
    "errors"
    "fmt"
)

// ErrNotFound is returned when the referenced booking or profile does
// not exist.  Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// booking they do not own, or an operation reserved for another role.
// Handlers should translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrPendingChange is returned when a cancel or reschedule request is
// submitted while another pending change is still unresolved.  Handlers
// should translate this into an HTTP 409 response.
var ErrPendingChange = errors.New("a pending change already exists for this booking")

// ErrNoPendingChange is returned when an admin attempts to resolve a
// booking that has no outstanding change request.
var ErrNoPendingChange = errors.New("no pending change to resolve")

// ValidationError describes rejected input: a blank required field, a
// malformed URL or a start time that does not meet the minimum lead.
// The operation was never attempted against the store.
type ValidationError struct {
    Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// invalidf builds a *ValidationError from a format string.
func invalidf(format string, args ...interface{}) error {
    return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
    var ve *ValidationError
    return errors.As(err, &ve)
}
