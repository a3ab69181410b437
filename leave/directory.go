/*
directory.go - Employee onboarding and lookups

PURPOSE:
  Wraps the EmployeeDirectory store with the onboarding rules: input
  validation, case-insensitive email uniqueness, and the initial
  entitlement pro-ration (see entitlement.go). Lifecycle transitions never
  go through here; they re-fetch employees straight from the store.

SEE ALSO:
  - entitlement.go: Pro-ration of the initial balance
  - service.go: The only other mutator of employee state
*/
package leave

import (
	"context"
	"regexp"
	"strings"
	"sync"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Directory is the employee-facing service: onboarding and read queries.
type Directory struct {
	mu    sync.Mutex
	store EmployeeDirectory
	newID IDGenerator
	today func() Date
}

// NewDirectory wires the directory service to its store.
func NewDirectory(store EmployeeDirectory) *Directory {
	return &Directory{
		store: store,
		newID: NewEmployeeID,
		today: Today,
	}
}

// WithClock replaces the today() source. Returns d for chaining.
func (d *Directory) WithClock(today func() Date) *Directory {
	d.today = today
	return d
}

// AddEmployee validates and onboards a new employee. The initial
// TotalLeaveBalance comes from the pro-ration rule; UsedLeaves starts at 0.
func (d *Directory) AddEmployee(ctx context.Context, name, email, department string, joiningDate Date) (*Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	today := d.today()

	if strings.TrimSpace(name) == "" {
		return nil, validationf("employee name cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return nil, validationf("invalid email format")
	}
	if strings.TrimSpace(department) == "" {
		return nil, validationf("department cannot be empty")
	}
	if joiningDate.IsZero() {
		return nil, validationf("joining date cannot be empty")
	}
	if joiningDate.After(today) {
		return nil, validationf("joining date cannot be in the future")
	}
	if joiningDate.Before(today.AddYears(-50)) {
		return nil, validationf("invalid joining date - too far in the past")
	}

	// Email unique across all employees, case-insensitive.
	all, err := d.store.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range all {
		if strings.EqualFold(e.Email, email) {
			return nil, &DuplicateEmailError{Email: email}
		}
	}

	emp := &Employee{
		ID:                d.newID(d.employeeIDTaken(ctx)),
		Name:              strings.TrimSpace(name),
		Email:             email,
		Department:        strings.TrimSpace(department),
		JoiningDate:       joiningDate,
		TotalLeaveBalance: InitialEntitlement(joiningDate, today),
		UsedLeaves:        0,
	}

	if err := d.store.Save(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// Get returns the employee, or NotFound.
func (d *Directory) Get(ctx context.Context, employeeID string) (*Employee, error) {
	emp, err := d.store.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, &NotFoundError{Kind: "employee", ID: employeeID}
	}
	return emp, nil
}

// All returns every employee.
func (d *Directory) All(ctx context.Context) ([]*Employee, error) {
	return d.store.All(ctx)
}

// ByDepartment returns employees in the given department, matched
// case-insensitively.
func (d *Directory) ByDepartment(ctx context.Context, department string) ([]*Employee, error) {
	all, err := d.store.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []*Employee
	for _, e := range all {
		if strings.EqualFold(e.Department, department) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (d *Directory) employeeIDTaken(ctx context.Context) func(id string) bool {
	return func(id string) bool {
		ok, err := d.store.ExistsByID(ctx, id)
		return err == nil && ok
	}
}
