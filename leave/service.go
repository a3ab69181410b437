/*
service.go - Leave request lifecycle engine

PURPOSE:
  Owns the state machine and the balance-reservation side effects:

  1. Apply:   Validate and create a PENDING request
  2. Approve: PENDING -> APPROVED, debit the employee's used leaves
  3. Reject:  PENDING -> REJECTED, no balance effect
  4. Cancel:  PENDING/APPROVED -> CANCELLED, credit back if it was approved

STATE MACHINE:
  ┌─────────┐   approve   ┌──────────┐
  │ PENDING │────────────▶│ APPROVED │──┐
  └─────────┘             └──────────┘  │ cancel
     │    │                             ▼ (credit)
     │    │  reject       ┌───────────┐
     │    └──────────────▶│ REJECTED  │   terminal
     │       cancel       └───────────┘
     └───────────────────▶ CANCELLED      terminal

BALANCE RESERVATION:
  At most one reservation exists per approved request: approving debits
  UsedLeaves by the chargeable day count exactly once, cancelling an
  approved request credits it back exactly once. The only other UsedLeaves
  writer is the explicit UpdateLeaveBalance correction, which takes the
  same lock. Approval re-computes the day count and re-checks the balance,
  because other approvals may have landed since the application.

CONCURRENCY:
  Every transition runs read-validate-write as one critical section under a
  single service-wide mutex. Two concurrent approvals against the same
  employee therefore cannot both pass the balance check against a stale
  snapshot, and two approve/reject/cancel calls on the same request cannot
  both observe PENDING. Load is low (single-operator scale); one lock
  beats a lock per entity here.

SEE ALSO:
  - validate.go: Admissibility rules invoked by Apply
  - errors.go: TransitionError, InsufficientBalanceError
*/
package leave

import (
	"context"
	"strings"
	"sync"
)

// Service is the lifecycle engine. All mutations of employees and leave
// requests flow through it; it never caches entities across calls.
type Service struct {
	mu sync.Mutex

	employees EmployeeDirectory
	requests  RequestStore
	tx        Transactor // optional; nil means sequential saves
	newID     IDGenerator
	today     func() Date
}

// NewService wires the lifecycle engine to its stores. The zero clock is
// the real calendar; tests override it with WithClock.
func NewService(employees EmployeeDirectory, requests RequestStore) *Service {
	return &Service{
		employees: employees,
		requests:  requests,
		newID:     NewRequestID,
		today:     Today,
	}
}

// WithClock replaces the today() source. Returns s for chaining.
func (s *Service) WithClock(today func() Date) *Service {
	s.today = today
	return s
}

// WithIDGenerator replaces the request id generator. Returns s for chaining.
func (s *Service) WithIDGenerator(gen IDGenerator) *Service {
	s.newID = gen
	return s
}

// WithTransactor makes transitions that write both stores atomic. Returns s
// for chaining.
func (s *Service) WithTransactor(tx Transactor) *Service {
	s.tx = tx
	return s
}

// =============================================================================
// APPLY
// =============================================================================

// Apply validates a leave application and, on success, creates a new
// request in PENDING status.
func (s *Service) Apply(ctx context.Context, employeeID string, start, end Date, reason string, typ LeaveType) (*LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Rules that need no employee state run first: a malformed application
	// reports its rule violation, not NotFound, even for an unknown id.
	today := s.today()
	if err := validateWindow(employeeID, start, end, reason, typ, today); err != nil {
		return nil, err
	}

	emp, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	existing, err := s.requests.ByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if err := validateAgainstEmployee(start, end, emp, existing); err != nil {
		return nil, err
	}

	req := &LeaveRequest{
		ID:          s.newID(s.requestIDTaken(ctx)),
		EmployeeID:  employeeID,
		StartDate:   start,
		EndDate:     end,
		Reason:      strings.TrimSpace(reason),
		Type:        typ,
		Status:      StatusPending,
		AppliedDate: today,
	}

	if err := s.requests.Save(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// =============================================================================
// APPROVE / REJECT / CANCEL
// =============================================================================

// Approve moves a PENDING request to APPROVED and debits the employee's
// used leaves by the request's chargeable day count. The balance is
// re-checked here: it may have shrunk since the application.
func (s *Service) Approve(ctx context.Context, requestID, approvedBy string) (*LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, &TransitionError{RequestID: requestID, Status: req.Status, Attempted: "approve"}
	}

	emp, err := s.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	days := req.Days()
	if days > emp.AvailableLeaves() {
		return nil, &InsufficientBalanceError{
			EmployeeID: emp.ID,
			Requested:  days,
			Available:  emp.AvailableLeaves(),
		}
	}

	emp.UsedLeaves += days

	approvedAt := s.today()
	req.Status = StatusApproved
	req.ApprovedBy = approvedBy
	req.ApprovedDate = &approvedAt

	return req, s.saveBoth(ctx, emp, req)
}

// Reject moves a PENDING request to REJECTED. No balance effect.
func (s *Service) Reject(ctx context.Context, requestID, rejectedBy, comments string) (*LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, &TransitionError{RequestID: requestID, Status: req.Status, Attempted: "reject"}
	}

	rejectedAt := s.today()
	req.Status = StatusRejected
	req.ApprovedBy = rejectedBy
	req.ApprovedDate = &rejectedAt
	req.Comments = comments

	return req, s.requests.Save(ctx, req)
}

// Cancel moves a PENDING or APPROVED request to CANCELLED. Cancelling an
// approved request restores the reserved balance; cancelling a pending one
// has no balance effect.
func (s *Service) Cancel(ctx context.Context, requestID string) (*LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status == StatusCancelled || req.Status == StatusRejected {
		return nil, &TransitionError{RequestID: requestID, Status: req.Status, Attempted: "cancel"}
	}

	if req.Status == StatusApproved {
		emp, err := s.getEmployee(ctx, req.EmployeeID)
		if err != nil {
			return nil, err
		}
		emp.UsedLeaves -= req.Days()
		req.Status = StatusCancelled
		return req, s.saveBoth(ctx, emp, req)
	}

	req.Status = StatusCancelled
	return req, s.requests.Save(ctx, req)
}

// UpdateLeaveBalance is an explicit balance-correction operation: it sets
// UsedLeaves directly. It lives on the lifecycle engine so corrections and
// transitions serialize on the same lock; no other path may race a
// concurrent approval's debit.
func (s *Service) UpdateLeaveBalance(ctx context.Context, employeeID string, usedLeaves int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	emp.UsedLeaves = usedLeaves
	return s.employees.Save(ctx, emp)
}

// =============================================================================
// QUERIES - Read-only projections over the request store
// =============================================================================

// Pending returns all requests awaiting a decision.
func (s *Service) Pending(ctx context.Context) ([]*LeaveRequest, error) {
	return s.requests.ByStatus(ctx, StatusPending)
}

// History returns the full request history for an employee, in insertion
// order. Fails with NotFound if the employee does not exist.
func (s *Service) History(ctx context.Context, employeeID string) ([]*LeaveRequest, error) {
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.requests.ByEmployee(ctx, employeeID)
}

// All returns every leave request, unfiltered.
func (s *Service) All(ctx context.Context) ([]*LeaveRequest, error) {
	return s.requests.All(ctx)
}

// Stats returns request counts by status.
func (s *Service) Stats(ctx context.Context) (map[Status]int, error) {
	all, err := s.requests.All(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[Status]int, len(Statuses()))
	for _, st := range Statuses() {
		counts[st] = 0
	}
	for _, r := range all {
		counts[r.Status]++
	}
	return counts, nil
}

// =============================================================================
// INTERNALS
// =============================================================================

func (s *Service) getEmployee(ctx context.Context, id string) (*Employee, error) {
	emp, err := s.employees.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, &NotFoundError{Kind: "employee", ID: id}
	}
	return emp, nil
}

func (s *Service) getRequest(ctx context.Context, id string) (*LeaveRequest, error) {
	req, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, &NotFoundError{Kind: "leave request", ID: id}
	}
	return req, nil
}

// saveBoth persists the employee and the request together. Both stores are
// only ever mutated under s.mu, so no reader can observe an APPROVED status
// with an un-debited balance or vice versa. With a Transactor wired, the two
// writes also commit atomically, so a crash between them cannot strand a
// debit against a still-pending request.
func (s *Service) saveBoth(ctx context.Context, emp *Employee, req *LeaveRequest) error {
	save := func(ctx context.Context) error {
		if err := s.employees.Save(ctx, emp); err != nil {
			return err
		}
		return s.requests.Save(ctx, req)
	}
	if s.tx != nil {
		return s.tx.InTx(ctx, save)
	}
	return save(ctx)
}

func (s *Service) requestIDTaken(ctx context.Context) func(id string) bool {
	return func(id string) bool {
		req, err := s.requests.Get(ctx, id)
		return err == nil && req != nil
	}
}
