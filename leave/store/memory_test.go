package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/leave/store"
)

func TestMemoryEmployees_GetReturnsCopy(t *testing.T) {
	// Mutating a fetched employee must not leak into the store until Save.

	m := store.NewMemoryEmployees()
	ctx := context.Background()

	require.NoError(t, m.Save(ctx, &leave.Employee{ID: "EMP1", UsedLeaves: 0, TotalLeaveBalance: 24}))

	emp, err := m.Get(ctx, "EMP1")
	require.NoError(t, err)
	emp.UsedLeaves = 10

	again, err := m.Get(ctx, "EMP1")
	require.NoError(t, err)
	assert.Equal(t, 0, again.UsedLeaves, "unsaved mutation leaked into the store")
}

func TestMemoryEmployees_MissingIDIsNilNil(t *testing.T) {
	m := store.NewMemoryEmployees()

	emp, err := m.Get(context.Background(), "EMPMISSING0")
	require.NoError(t, err)
	assert.Nil(t, emp)

	ok, err := m.ExistsByID(context.Background(), "EMPMISSING0")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRequests_InsertionOrderSurvivesUpdates(t *testing.T) {
	// GIVEN: Requests a, b, c saved in order, then b updated
	// WHEN: Querying by employee
	// THEN: Order is still a, b, c

	m := store.NewMemoryRequests()
	ctx := context.Background()

	mk := func(id string, status leave.Status) *leave.LeaveRequest {
		return &leave.LeaveRequest{
			ID:         id,
			EmployeeID: "EMP1",
			StartDate:  leave.NewDate(2024, time.February, 5),
			EndDate:    leave.NewDate(2024, time.February, 5),
			Status:     status,
		}
	}

	require.NoError(t, m.Save(ctx, mk("LRA", leave.StatusPending)))
	require.NoError(t, m.Save(ctx, mk("LRB", leave.StatusPending)))
	require.NoError(t, m.Save(ctx, mk("LRC", leave.StatusPending)))
	require.NoError(t, m.Save(ctx, mk("LRB", leave.StatusApproved))) // update

	reqs, err := m.ByEmployee(ctx, "EMP1")
	require.NoError(t, err)
	require.Len(t, reqs, 3)
	assert.Equal(t, "LRA", reqs[0].ID)
	assert.Equal(t, "LRB", reqs[1].ID)
	assert.Equal(t, "LRC", reqs[2].ID)
	assert.Equal(t, leave.StatusApproved, reqs[1].Status)

	approved, err := m.ByStatus(ctx, leave.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "LRB", approved[0].ID)

	all, err := m.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
