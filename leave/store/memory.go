// Package store provides in-memory implementations of the leave
// persistence interfaces, for tests and single-process use.
package store

import (
	"context"
	"sync"

	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// MEMORY EMPLOYEE DIRECTORY
// =============================================================================

type MemoryEmployees struct {
	mu    sync.RWMutex
	byID  map[string]leave.Employee
	order []string // insertion order
}

func NewMemoryEmployees() *MemoryEmployees {
	return &MemoryEmployees{byID: make(map[string]leave.Employee)}
}

var _ leave.EmployeeDirectory = (*MemoryEmployees)(nil)

// Get returns a copy; callers mutate their copy and persist with Save.
func (m *MemoryEmployees) Get(_ context.Context, id string) (*leave.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emp, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &emp, nil
}

func (m *MemoryEmployees) Save(_ context.Context, emp *leave.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[emp.ID]; !ok {
		m.order = append(m.order, emp.ID)
	}
	m.byID[emp.ID] = *emp
	return nil
}

func (m *MemoryEmployees) ExistsByID(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byID[id]
	return ok, nil
}

func (m *MemoryEmployees) All(_ context.Context) ([]*leave.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*leave.Employee, 0, len(m.order))
	for _, id := range m.order {
		emp := m.byID[id]
		result = append(result, &emp)
	}
	return result, nil
}

// =============================================================================
// MEMORY REQUEST STORE
// =============================================================================

type MemoryRequests struct {
	mu    sync.RWMutex
	byID  map[string]leave.LeaveRequest
	order []string // insertion order, for history queries
}

func NewMemoryRequests() *MemoryRequests {
	return &MemoryRequests{byID: make(map[string]leave.LeaveRequest)}
}

var _ leave.RequestStore = (*MemoryRequests)(nil)

func (m *MemoryRequests) Get(_ context.Context, id string) (*leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	req, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (m *MemoryRequests) Save(_ context.Context, req *leave.LeaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[req.ID]; !ok {
		m.order = append(m.order, req.ID)
	}
	m.byID[req.ID] = *req
	return nil
}

func (m *MemoryRequests) ByEmployee(_ context.Context, employeeID string) ([]*leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.filterLocked(func(r leave.LeaveRequest) bool {
		return r.EmployeeID == employeeID
	}), nil
}

func (m *MemoryRequests) ByStatus(_ context.Context, status leave.Status) ([]*leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.filterLocked(func(r leave.LeaveRequest) bool {
		return r.Status == status
	}), nil
}

func (m *MemoryRequests) All(_ context.Context) ([]*leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.filterLocked(func(leave.LeaveRequest) bool { return true }), nil
}

func (m *MemoryRequests) filterLocked(keep func(leave.LeaveRequest) bool) []*leave.LeaveRequest {
	var result []*leave.LeaveRequest
	for _, id := range m.order {
		req := m.byID[id]
		if keep(req) {
			result = append(result, &req)
		}
	}
	return result
}
