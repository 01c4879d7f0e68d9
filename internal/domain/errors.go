package domain

import "fmt"

// The engine reports every rejected operation through one of the typed
// errors below so the API layer can map it to a status code and surface the
// reason string verbatim. Infrastructure failures (storage down) are never
// wrapped in these types and bubble unchanged.

// ConflictError means a proposed window overlaps an existing booking.
type ConflictError struct {
	ConflictingReservationID int32
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("requested window conflicts with reservation %d", e.ConflictingReservationID)
}

// InvalidStateError means a transition was attempted from a state it is not
// valid in, including stale-state races lost to a concurrent actor.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string { return e.Reason }

func NewInvalidStateError(reason string) *InvalidStateError {
	return &InvalidStateError{Reason: reason}
}

// ErrStaleState is returned by conditional repository updates that matched
// zero rows: the reservation moved out of the expected state between read
// and write. The losing caller gets exactly this error and no side effects.
var ErrStaleState = NewInvalidStateError("reservation is no longer in the expected state")

// PermissionError means the actor's role or membership does not authorize
// the requested operation.
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string { return e.Reason }

func NewPermissionError(reason string) *PermissionError {
	return &PermissionError{Reason: reason}
}

// ValidationError means malformed input: end before start, an amount outside
// its allowed range, a missing required reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// PolicyError means the operation would violate amenity constraints, such as
// completing a reservation before its event date or booking outside
// operating hours.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string { return e.Reason }

func NewPolicyError(reason string) *PolicyError {
	return &PolicyError{Reason: reason}
}
