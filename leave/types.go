/*
Package leave provides the core leave-request validation and lifecycle engine.

PURPOSE:
  This package contains the domain model and business rules for tracking
  employee leave requests against per-employee balances: who may apply,
  how many chargeable days a request consumes, how a request moves between
  pending/approved/rejected/cancelled, and how balance is reserved and
  restored across those transitions.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: Identity, joining date, and leave-balance counters
  - LeaveRequest: An inclusive date range with a lifecycle status
  - LeaveType: Closed set of leave categories (annual, sick, ...)
  - Status: Closed set of lifecycle states

DESIGN PRINCIPLES:
  1. Weak references: A LeaveRequest stores only the employee id, never the
     Employee itself. Balances are always re-fetched at transition time.
  2. Closed enums: Status and LeaveType are typed constants, not open
     strings, so the state machine is checkable at compile time.
  3. Integer days: Balances are whole days. Partial-day leave is out of
     scope; only the entitlement pro-ration uses decimal arithmetic.

USAGE:
  emp := &leave.Employee{ID: "EMP1A2B3C4D", JoiningDate: leave.NewDate(2024, time.January, 1)}
  req := &leave.LeaveRequest{
      EmployeeID: emp.ID,
      StartDate:  leave.NewDate(2024, time.February, 5),
      EndDate:    leave.NewDate(2024, time.February, 7),
      Type:       leave.TypeAnnual,
  }

SEE ALSO:
  - validate.go: Admissibility rules for new applications
  - service.go: Lifecycle state machine and balance reservation
  - directory.go: Employee onboarding and lookups
*/
package leave

import "strings"

// =============================================================================
// LEAVE TYPE - Closed set of leave categories
// =============================================================================

type LeaveType string

const (
	TypeAnnual    LeaveType = "annual"
	TypeSick      LeaveType = "sick"
	TypeMaternity LeaveType = "maternity"
	TypePaternity LeaveType = "paternity"
	TypeEmergency LeaveType = "emergency"
	TypeCasual    LeaveType = "casual"
)

// Types lists every defined leave type, in display order.
func Types() []LeaveType {
	return []LeaveType{TypeAnnual, TypeSick, TypeMaternity, TypePaternity, TypeEmergency, TypeCasual}
}

// Valid reports whether t is one of the defined leave types.
func (t LeaveType) Valid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypeMaternity, TypePaternity, TypeEmergency, TypeCasual:
		return true
	}
	return false
}

// DisplayName returns the human-readable name, e.g. "Annual Leave".
func (t LeaveType) DisplayName() string {
	switch t {
	case TypeAnnual:
		return "Annual Leave"
	case TypeSick:
		return "Sick Leave"
	case TypeMaternity:
		return "Maternity Leave"
	case TypePaternity:
		return "Paternity Leave"
	case TypeEmergency:
		return "Emergency Leave"
	case TypeCasual:
		return "Casual Leave"
	default:
		return string(t)
	}
}

// ParseLeaveType converts a string (any case) into a LeaveType.
func ParseLeaveType(s string) (LeaveType, bool) {
	t := LeaveType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

// =============================================================================
// STATUS - Lifecycle states
// =============================================================================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every lifecycle state.
func Statuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled}
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Active reports whether a request in this status still holds its date range.
// Only active requests participate in overlap checks.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusApproved
}

// ParseStatus converts a string (any case) into a Status.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}

// =============================================================================
// EMPLOYEE - Identity and balance counters
// =============================================================================

// Employee holds identity and leave-balance counters. TotalLeaveBalance is
// set once at onboarding by the pro-ration rule; UsedLeaves is adjusted only
// by lifecycle transitions (approve debits, cancel-of-approved credits).
type Employee struct {
	ID          string
	Name        string
	Email       string
	Department  string
	JoiningDate Date

	TotalLeaveBalance int
	UsedLeaves        int
}

// AvailableLeaves returns the remaining balance in days.
func (e *Employee) AvailableLeaves() int {
	return e.TotalLeaveBalance - e.UsedLeaves
}

// =============================================================================
// LEAVE REQUEST - An inclusive date range with a lifecycle status
// =============================================================================

// LeaveRequest is a request for leave over [StartDate, EndDate] inclusive.
// The date range, reason, type, and applied date are immutable after
// creation; only the lifecycle fields change.
type LeaveRequest struct {
	ID         string
	EmployeeID string // weak reference: id only, never the Employee
	StartDate  Date
	EndDate    Date
	Reason     string
	Type       LeaveType

	Status      Status
	AppliedDate Date

	// Set by approve/reject transitions; zero before that.
	ApprovedBy   string
	ApprovedDate *Date
	Comments     string
}

// Days returns the chargeable day count for this request. It is the single
// quantity used both for validation and for balance reservation.
func (r *LeaveRequest) Days() int {
	return Workdays(r.StartDate, r.EndDate)
}

// Overlaps reports whether this request's range intersects [start, end].
// Closed-interval test: two ranges overlap if neither ends before the
// other begins.
func (r *LeaveRequest) Overlaps(start, end Date) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}
