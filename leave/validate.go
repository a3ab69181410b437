/*
validate.go - Admissibility rules for leave applications

PURPOSE:
  Decides, before any mutation, whether a leave application may exist.
  Pure and side-effect-free given a snapshot of the employee and their
  existing requests: the lifecycle engine fetches state, calls in here,
  and only then mutates.

RULE ORDER:
  Checks run in a fixed order and the first failure wins, so error
  reporting is deterministic:
   1. employee id non-empty
   2. both dates present, start <= end
   3. start >= today (no retroactive application)
   4. reason non-empty after trimming
   5. leave type is a defined variant
   6. start <= today + 1 year (advance-booking ceiling)
   7. chargeable days <= 30
   8. start >= joining date
   9. chargeable days <= available balance
  10. no overlap with the employee's pending/approved requests

  Note rule 3 checks only the start date; a multi-day range that starts
  today may end in the past of a later check's perspective. That mirrors
  the historical behavior on purpose.

SEE ALSO:
  - time.go: Workdays, the chargeable-day function shared with approval
  - service.go: Calls ValidateApplication inside its critical section
*/
package leave

import "strings"

// MaxConsecutiveDays caps the chargeable days of a single request.
const MaxConsecutiveDays = 30

// ValidateApplication checks a candidate application against the
// admissibility rules, in order. existing must hold the employee's current
// requests (any status; inactive ones are skipped by the overlap check).
// Returns nil, or the first failing rule's error.
func ValidateApplication(
	employeeID string,
	start, end Date,
	reason string,
	typ LeaveType,
	emp *Employee,
	existing []*LeaveRequest,
	today Date,
) error {
	if err := validateWindow(employeeID, start, end, reason, typ, today); err != nil {
		return err
	}
	return validateAgainstEmployee(start, end, emp, existing)
}

// validateWindow runs rules 1-7, the ones that need no employee state.
// The lifecycle engine runs these before it resolves the employee id, so a
// malformed application reports its rule violation even when the id is
// unknown.
func validateWindow(employeeID string, start, end Date, reason string, typ LeaveType, today Date) error {
	if strings.TrimSpace(employeeID) == "" {
		return validationf("employee ID cannot be empty")
	}

	if start.IsZero() || end.IsZero() {
		return validationf("start date and end date cannot be empty")
	}
	if start.After(end) {
		return validationf("start date cannot be after end date")
	}

	if start.Before(today) {
		return validationf("cannot apply for leave in the past")
	}

	if strings.TrimSpace(reason) == "" {
		return validationf("leave reason cannot be empty")
	}

	if !typ.Valid() {
		return validationf("leave type must be specified")
	}

	if start.After(today.AddYears(1)) {
		return validationf("cannot apply for leave more than 1 year in advance")
	}

	if Workdays(start, end) > MaxConsecutiveDays {
		return validationf("cannot apply for more than %d consecutive working days", MaxConsecutiveDays)
	}

	return nil
}

// validateAgainstEmployee runs rules 8-10 against the employee's joining
// date, balance, and existing requests.
func validateAgainstEmployee(start, end Date, emp *Employee, existing []*LeaveRequest) error {
	if start.Before(emp.JoiningDate) {
		return validationf("cannot apply for leave before joining date (%s)", emp.JoiningDate)
	}

	days := Workdays(start, end)
	if days > emp.AvailableLeaves() {
		return &InsufficientBalanceError{
			EmployeeID: emp.ID,
			Requested:  days,
			Available:  emp.AvailableLeaves(),
		}
	}

	if conflict := FindOverlap(existing, start, end); conflict != nil {
		return &OverlapError{RequestID: conflict.ID}
	}

	return nil
}

// FindOverlap returns the first pending/approved request in requests whose
// range intersects [start, end], or nil. Cancelled and rejected requests
// never conflict.
func FindOverlap(requests []*LeaveRequest, start, end Date) *LeaveRequest {
	for _, r := range requests {
		if r.Status.Active() && r.Overlaps(start, end) {
			return r
		}
	}
	return nil
}
