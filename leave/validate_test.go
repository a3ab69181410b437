package leave_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

// today is a Monday; the fixture employee joined two weeks earlier with a
// full-year entitlement.
var vToday = date(2024, time.January, 15)

func fixtureEmployee() *leave.Employee {
	return &leave.Employee{
		ID:                "EMPAAAA0001",
		Name:              "John Doe",
		Email:             "john.doe@company.com",
		Department:        "Engineering",
		JoiningDate:       date(2024, time.January, 1),
		TotalLeaveBalance: 24,
	}
}

func validate(emp *leave.Employee, existing []*leave.LeaveRequest, start, end leave.Date) error {
	return leave.ValidateApplication(emp.ID, start, end, "vacation", leave.TypeAnnual, emp, existing, vToday)
}

// =============================================================================
// RULE-BY-RULE TESTS
// =============================================================================

func TestValidate_Admissible(t *testing.T) {
	err := validate(fixtureEmployee(), nil, date(2024, time.February, 5), date(2024, time.February, 7))
	if err != nil {
		t.Fatalf("expected admissible application, got %v", err)
	}
}

func TestValidate_EmptyEmployeeID(t *testing.T) {
	err := leave.ValidateApplication("  ", date(2024, time.February, 5), date(2024, time.February, 7),
		"vacation", leave.TypeAnnual, fixtureEmployee(), nil, vToday)
	assertValidation(t, err, "employee ID")
}

func TestValidate_MissingDates(t *testing.T) {
	err := leave.ValidateApplication("EMPAAAA0001", leave.Date{}, date(2024, time.February, 7),
		"vacation", leave.TypeAnnual, fixtureEmployee(), nil, vToday)
	assertValidation(t, err, "start date and end date")
}

func TestValidate_StartAfterEnd(t *testing.T) {
	err := validate(fixtureEmployee(), nil, date(2024, time.February, 7), date(2024, time.February, 5))
	assertValidation(t, err, "start date cannot be after end date")
}

func TestValidate_Retroactive(t *testing.T) {
	err := validate(fixtureEmployee(), nil, date(2024, time.January, 10), date(2024, time.January, 16))
	assertValidation(t, err, "in the past")
}

func TestValidate_StartToday_Allowed(t *testing.T) {
	// Rule 3 is >= today, not > today.
	err := validate(fixtureEmployee(), nil, vToday, vToday.AddDays(1))
	if err != nil {
		t.Fatalf("applying starting today should be admissible, got %v", err)
	}
}

func TestValidate_EmptyReason(t *testing.T) {
	err := leave.ValidateApplication("EMPAAAA0001", date(2024, time.February, 5), date(2024, time.February, 7),
		"   ", leave.TypeAnnual, fixtureEmployee(), nil, vToday)
	assertValidation(t, err, "reason")
}

func TestValidate_UnknownLeaveType(t *testing.T) {
	err := leave.ValidateApplication("EMPAAAA0001", date(2024, time.February, 5), date(2024, time.February, 7),
		"vacation", leave.LeaveType("sabbatical"), fixtureEmployee(), nil, vToday)
	assertValidation(t, err, "leave type")
}

func TestValidate_AdvanceBookingCeiling(t *testing.T) {
	// Exactly one year ahead is allowed; one day past it is not.
	oneYear := vToday.AddYears(1)

	if err := validate(fixtureEmployee(), nil, oneYear, oneYear); err != nil {
		t.Fatalf("start exactly today+1y should pass, got %v", err)
	}

	err := validate(fixtureEmployee(), nil, oneYear.AddDays(1), oneYear.AddDays(1))
	assertValidation(t, err, "1 year in advance")
}

func TestValidate_MaxConsecutiveDays(t *testing.T) {
	// GIVEN: A range of 31 weekdays (Feb 5 - Mar 18 2024)
	// WHEN: Validating
	// THEN: The 30-day cap fires, not the balance rule, even though balance
	//       would fail too (order matters)

	err := validate(fixtureEmployee(), nil, date(2024, time.February, 5), date(2024, time.March, 18))
	assertValidation(t, err, "30 consecutive working days")
}

func TestValidate_BeforeJoiningDate(t *testing.T) {
	// GIVEN: Employee joining Feb 1 (future relative to today Jan 15)
	// WHEN: Applying for the day before the joining date
	// THEN: ValidationFailed referencing the joining date

	emp := fixtureEmployee()
	emp.JoiningDate = date(2024, time.February, 1)

	err := validate(emp, nil, date(2024, time.January, 31), date(2024, time.February, 2))
	assertValidation(t, err, "joining date (2024-02-01)")
}

func TestValidate_InsufficientBalance(t *testing.T) {
	emp := fixtureEmployee()
	emp.UsedLeaves = 22 // 2 available

	err := validate(emp, nil, date(2024, time.February, 5), date(2024, time.February, 7))
	if !errors.Is(err, leave.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	var ibe *leave.InsufficientBalanceError
	if !errors.As(err, &ibe) {
		t.Fatalf("expected InsufficientBalanceError, got %T", err)
	}
	if ibe.Requested != 3 || ibe.Available != 2 {
		t.Errorf("expected requested=3 available=2, got %+v", ibe)
	}
}

func TestValidate_Overlap(t *testing.T) {
	// GIVEN: A pending request Feb 5-9
	// WHEN: Applying for Feb 7-10
	// THEN: Conflict naming the existing request

	existing := []*leave.LeaveRequest{{
		ID:         "LR00000001",
		EmployeeID: "EMPAAAA0001",
		StartDate:  date(2024, time.February, 5),
		EndDate:    date(2024, time.February, 9),
		Status:     leave.StatusPending,
	}}

	err := validate(fixtureEmployee(), existing, date(2024, time.February, 7), date(2024, time.February, 10))
	if !errors.Is(err, leave.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "LR00000001") {
		t.Errorf("conflict should name the existing request: %v", err)
	}
}

func TestValidate_RuleOrder_FirstFailureWins(t *testing.T) {
	// GIVEN: Input violating both rule 1 (empty id) and rule 2 (start > end)
	// THEN: Rule 1's message is reported

	err := leave.ValidateApplication("", date(2024, time.February, 7), date(2024, time.February, 5),
		"", leave.LeaveType("bogus"), fixtureEmployee(), nil, vToday)
	assertValidation(t, err, "employee ID")
}

func assertValidation(t *testing.T, err error, fragment string) {
	t.Helper()
	if !errors.Is(err, leave.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), fragment) {
		t.Errorf("expected message containing %q, got %q", fragment, err.Error())
	}
}

// =============================================================================
// OVERLAP SEMANTICS
// =============================================================================

func TestFindOverlap_ClosedInterval(t *testing.T) {
	existing := []*leave.LeaveRequest{{
		ID:        "LR00000001",
		StartDate: date(2024, time.February, 5),
		EndDate:   date(2024, time.February, 9),
		Status:    leave.StatusApproved,
	}}

	// Touching the last day conflicts (inclusive ranges).
	if leave.FindOverlap(existing, date(2024, time.February, 9), date(2024, time.February, 12)) == nil {
		t.Error("range starting on the existing end date should conflict")
	}

	// Starting the next calendar day does not.
	if leave.FindOverlap(existing, date(2024, time.February, 10), date(2024, time.February, 12)) != nil {
		t.Error("range starting after the existing end date should not conflict")
	}

	// Ending the day before does not.
	if leave.FindOverlap(existing, date(2024, time.February, 1), date(2024, time.February, 4)) != nil {
		t.Error("range ending before the existing start date should not conflict")
	}
}

func TestFindOverlap_IgnoresInactiveRequests(t *testing.T) {
	// Cancelled and rejected requests release their window.
	existing := []*leave.LeaveRequest{
		{ID: "LR-cancelled", StartDate: date(2024, time.February, 5), EndDate: date(2024, time.February, 9), Status: leave.StatusCancelled},
		{ID: "LR-rejected", StartDate: date(2024, time.February, 5), EndDate: date(2024, time.February, 9), Status: leave.StatusRejected},
	}

	if got := leave.FindOverlap(existing, date(2024, time.February, 5), date(2024, time.February, 9)); got != nil {
		t.Errorf("inactive requests should not conflict, got %s", got.ID)
	}
}
