/*
errors.go - Centralized error taxonomy for the leave engine

PURPOSE:
  All error kinds in one place. Every core operation returns exactly success
  or one tagged failure; the engine never logs, prints, or retries. The
  presentation layer maps kinds to display (the api package maps them to
  HTTP status codes).

ERROR KINDS:
  1. ErrNotFound            - Referenced employee or request does not exist
  2. ErrValidation          - An admissibility rule failed
  3. ErrInvalidTransition   - Status forbids the attempted transition
  4. ErrInsufficientBalance - Balance check failed at apply or approval time
  5. ErrConflict            - Overlapping leave window or duplicate email

USAGE:
  Callers branch with errors.Is():

    if errors.Is(err, leave.ErrInsufficientBalance) {
        // surface 422 / re-prompt
    }

SEE ALSO:
  - validate.go: Produces ValidationError and OverlapError
  - service.go: Produces TransitionError and InsufficientBalanceError
*/
package leave

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a referenced employee or request id
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when a leave application fails one of the
	// admissibility rules. The wrapping ValidationError carries the
	// specific first-failing rule's message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition is returned when approve/reject/cancel is
	// attempted from a status that forbids it.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInsufficientBalance is returned when the chargeable day count
	// exceeds the employee's available balance.
	ErrInsufficientBalance = errors.New("insufficient leave balance")

	// ErrConflict is returned for an overlapping leave window or a
	// duplicate email at employee creation.
	ErrConflict = errors.New("conflict")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports which admissibility rule failed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return ErrValidation }

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError identifies the missing entity.
type NotFoundError struct {
	Kind string // "employee" or "leave request"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// TransitionError reports a forbidden lifecycle transition.
type TransitionError struct {
	RequestID string
	Status    Status // current status that forbids the transition
	Attempted string // "approve", "reject", "cancel"
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s leave request %s with status: %s", e.Attempted, e.RequestID, e.Status)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// InsufficientBalanceError provides details about a balance shortage.
type InsufficientBalanceError struct {
	EmployeeID string
	Requested  int
	Available  int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient leave balance. Requested: %d days, Available: %d days",
		e.Requested, e.Available)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// OverlapError reports an intersection with an existing active request.
type OverlapError struct {
	RequestID string // the existing pending/approved request
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("leave request overlaps with existing leave: %s", e.RequestID)
}

func (e *OverlapError) Unwrap() error { return ErrConflict }

// DuplicateEmailError reports an email uniqueness violation at onboarding.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("employee with email %s already exists", e.Email)
}

func (e *DuplicateEmailError) Unwrap() error { return ErrConflict }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClientError returns true if the error is due to invalid caller input
// rather than an engine fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrConflict)
}
