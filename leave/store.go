/*
store.go - Persistence interfaces for employees and leave requests

PURPOSE:
  Defines the interface between the engines and the database. The engines
  only depend on these contracts; different implementations can use SQLite
  or in-memory storage.

KEY INTERFACES:
  EmployeeDirectory: Employee lookup and persistence
  RequestStore:      Leave request lookup, persistence, filtered queries
  IDGenerator:       Opaque unique identifiers per entity namespace

ID FORMAT CONTRACT:
  Identifiers are opaque strings unique within their namespace. The default
  generator produces "EMP" / "LR" followed by eight uppercase hex characters
  and retries on the (vanishingly unlikely) collision. The engines only
  require uniqueness, not this specific format.

IMPLEMENTATIONS:
  - leave/store/memory.go: In-memory for testing and single-process use
  - store/sqlite/sqlite.go: SQLite-backed

SEE ALSO:
  - service.go: Lifecycle engine consuming these interfaces
  - directory.go: Employee onboarding consuming EmployeeDirectory
*/
package leave

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// EMPLOYEE DIRECTORY
// =============================================================================

// EmployeeDirectory holds employee identity and balance counters.
// Get returns (nil, nil) when the id is unknown; callers translate that
// into a NotFoundError so storage stays error-taxonomy agnostic.
type EmployeeDirectory interface {
	Get(ctx context.Context, id string) (*Employee, error)
	Save(ctx context.Context, emp *Employee) error
	ExistsByID(ctx context.Context, id string) (bool, error)
	All(ctx context.Context) ([]*Employee, error)
}

// =============================================================================
// LEAVE REQUEST STORE
// =============================================================================

// RequestStore holds leave requests keyed by request id.
// ByEmployee preserves insertion order (full history).
type RequestStore interface {
	Get(ctx context.Context, id string) (*LeaveRequest, error)
	Save(ctx context.Context, req *LeaveRequest) error
	ByEmployee(ctx context.Context, employeeID string) ([]*LeaveRequest, error)
	ByStatus(ctx context.Context, status Status) ([]*LeaveRequest, error)
	All(ctx context.Context) ([]*LeaveRequest, error)
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// Transactor groups store writes into one atomic unit: fn's writes all land
// or none do. The lifecycle engine uses it, when available, for transitions
// that must persist an employee and a request together. Stores without
// multi-write atomicity simply don't provide one.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// =============================================================================
// IDENTIFIER GENERATION
// =============================================================================

// IDGenerator produces an opaque identifier unique within a namespace.
// taken reports whether a candidate is already in use, so generators can
// retry on collision.
type IDGenerator func(taken func(id string) bool) string

// PrefixedID returns an IDGenerator producing prefix + 8 uppercase hex
// characters, e.g. "EMP1A2B3C4D" or "LR9F8E7D6C".
func PrefixedID(prefix string) IDGenerator {
	return func(taken func(id string) bool) string {
		for {
			id := prefix + strings.ToUpper(uuid.NewString()[:8])
			if taken == nil || !taken(id) {
				return id
			}
		}
	}
}

// NewEmployeeID and NewRequestID are the default namespace generators.
var (
	NewEmployeeID = PrefixedID("EMP")
	NewRequestID  = PrefixedID("LR")
)
