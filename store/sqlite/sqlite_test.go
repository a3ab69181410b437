package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func date(year int, month time.Month, day int) leave.Date {
	return leave.NewDate(year, month, day)
}

// =============================================================================
// EMPLOYEE ROUND TRIPS
// =============================================================================

func TestEmployees_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	dir := store.Employees()

	emp := &leave.Employee{
		ID:                "EMP1A2B3C4D",
		Name:              "John Doe",
		Email:             "john.doe@company.com",
		Department:        "Engineering",
		JoiningDate:       date(2023, time.January, 15),
		TotalLeaveBalance: 24,
		UsedLeaves:        3,
	}
	require.NoError(t, dir.Save(ctx, emp))

	got, err := dir.Get(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, emp, got)

	ok, err := dir.ExistsByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	missing, err := dir.Get(ctx, "EMPMISSING0")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEmployees_UpsertUpdatesBalance(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	dir := store.Employees()

	emp := &leave.Employee{ID: "EMP1", Name: "Jane Smith", Email: "jane@company.com",
		Department: "HR", JoiningDate: date(2022, time.June, 10), TotalLeaveBalance: 24}
	require.NoError(t, dir.Save(ctx, emp))

	emp.UsedLeaves = 6
	require.NoError(t, dir.Save(ctx, emp))

	got, err := dir.Get(ctx, "EMP1")
	require.NoError(t, err)
	assert.Equal(t, 6, got.UsedLeaves)

	all, err := dir.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "upsert must not duplicate rows")
}

// =============================================================================
// LEAVE REQUEST ROUND TRIPS
// =============================================================================

func TestRequests_SaveAndGet_ApprovalFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	reqs := store.Requests()

	pending := &leave.LeaveRequest{
		ID:          "LR00000001",
		EmployeeID:  "EMP1",
		StartDate:   date(2024, time.February, 5),
		EndDate:     date(2024, time.February, 7),
		Reason:      "vacation",
		Type:        leave.TypeAnnual,
		Status:      leave.StatusPending,
		AppliedDate: date(2024, time.January, 15),
	}
	require.NoError(t, reqs.Save(ctx, pending))

	got, err := reqs.Get(ctx, pending.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, pending, got)
	assert.Nil(t, got.ApprovedDate, "approval fields must be absent before a decision")

	approvedAt := date(2024, time.January, 16)
	pending.Status = leave.StatusApproved
	pending.ApprovedBy = "Jane Smith"
	pending.ApprovedDate = &approvedAt
	require.NoError(t, reqs.Save(ctx, pending))

	got, err = reqs.Get(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, got.Status)
	assert.Equal(t, "Jane Smith", got.ApprovedBy)
	require.NotNil(t, got.ApprovedDate)
	assert.Equal(t, approvedAt, *got.ApprovedDate)
}

func TestRequests_FilteredQueries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	reqs := store.Requests()

	mk := func(id, employeeID string, status leave.Status) *leave.LeaveRequest {
		return &leave.LeaveRequest{
			ID:          id,
			EmployeeID:  employeeID,
			StartDate:   date(2024, time.February, 5),
			EndDate:     date(2024, time.February, 7),
			Reason:      "r",
			Type:        leave.TypeAnnual,
			Status:      status,
			AppliedDate: date(2024, time.January, 15),
		}
	}

	require.NoError(t, reqs.Save(ctx, mk("LRA", "EMP1", leave.StatusPending)))
	require.NoError(t, reqs.Save(ctx, mk("LRB", "EMP2", leave.StatusApproved)))
	require.NoError(t, reqs.Save(ctx, mk("LRC", "EMP1", leave.StatusRejected)))

	byEmp, err := reqs.ByEmployee(ctx, "EMP1")
	require.NoError(t, err)
	require.Len(t, byEmp, 2)
	assert.Equal(t, "LRA", byEmp[0].ID, "history keeps insertion order")
	assert.Equal(t, "LRC", byEmp[1].ID)

	pending, err := reqs.ByStatus(ctx, leave.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "LRA", pending[0].ID)

	all, err := reqs.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

func TestInTx_RollsBackOnError(t *testing.T) {
	// A failed unit of work must leave no trace of its earlier writes.

	store := newTestStore(t)
	ctx := context.Background()

	emp := &leave.Employee{ID: "EMP1", Name: "John Doe", Email: "john.doe@company.com",
		Department: "Engineering", JoiningDate: date(2024, time.January, 1), TotalLeaveBalance: 24}

	err := store.InTx(ctx, func(ctx context.Context) error {
		if err := store.Employees().Save(ctx, emp); err != nil {
			return err
		}
		return errors.New("second write failed")
	})
	require.EqualError(t, err, "second write failed")

	got, err := store.Employees().Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "rolled-back save must not persist")
}

func TestInTx_CommitsBothWrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	emp := &leave.Employee{ID: "EMP1", Name: "John Doe", Email: "john.doe@company.com",
		Department: "Engineering", JoiningDate: date(2024, time.January, 1), TotalLeaveBalance: 24}
	req := &leave.LeaveRequest{ID: "LR1", EmployeeID: "EMP1",
		StartDate: date(2024, time.February, 5), EndDate: date(2024, time.February, 7),
		Reason: "vacation", Type: leave.TypeAnnual, Status: leave.StatusPending,
		AppliedDate: date(2024, time.January, 15)}

	err := store.InTx(ctx, func(ctx context.Context) error {
		if err := store.Employees().Save(ctx, emp); err != nil {
			return err
		}
		return store.Requests().Save(ctx, req)
	})
	require.NoError(t, err)

	gotEmp, err := store.Employees().Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.NotNil(t, gotEmp)
	gotReq, err := store.Requests().Get(ctx, req.ID)
	require.NoError(t, err)
	assert.NotNil(t, gotReq)
}

// =============================================================================
// END-TO-END OVER SQLITE
// =============================================================================

func TestLifecycle_OverSQLite(t *testing.T) {
	// The same approve/cancel round trip the engine tests run in memory,
	// against the real persistence layer.

	store := newTestStore(t)
	ctx := context.Background()
	today := date(2024, time.January, 15)

	emp := &leave.Employee{
		ID: "EMP1A2B3C4D", Name: "John Doe", Email: "john.doe@company.com",
		Department: "Engineering", JoiningDate: date(2024, time.January, 1),
		TotalLeaveBalance: 24,
	}
	require.NoError(t, store.Employees().Save(ctx, emp))

	svc := leave.NewService(store.Employees(), store.Requests()).
		WithTransactor(store).
		WithClock(func() leave.Date { return today })

	req, err := svc.Apply(ctx, emp.ID, date(2024, time.February, 5), date(2024, time.February, 7), "vacation", leave.TypeAnnual)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, req.ID, "Jane Smith")
	require.NoError(t, err)

	got, err := store.Employees().Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.UsedLeaves)

	_, err = svc.Cancel(ctx, req.ID)
	require.NoError(t, err)

	got, err = store.Employees().Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UsedLeaves)
}
