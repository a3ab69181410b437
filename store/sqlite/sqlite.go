/*
Package sqlite provides SQLite-backed implementations of the leave
persistence interfaces.

PURPOSE:
  Implements leave.EmployeeDirectory and leave.RequestStore on SQLite.
  In production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  employees:      Identity, joining date, and balance counters
  leave_requests: Date ranges with lifecycle status

INDEXES:
  idx_requests_employee: History and overlap queries per employee
  idx_requests_status:   Pending-queue queries

UPSERT SEMANTICS:
  Save() is an upsert keyed on the entity id. The original rowid is kept,
  so history queries ordered by rowid preserve insertion order even after
  status updates.

WAL MODE:
  The database is opened with WAL (Write-Ahead Logging) so readers don't
  block the single writer and crash recovery is cheap.

TRANSACTIONS:
  Store implements leave.Transactor: InTx begins one transaction and
  carries it in the context, and every repository call made with that
  context joins it. Lifecycle transitions that write an employee and a
  request together commit or roll back as one unit.

USAGE:
  store, err := sqlite.New("./data/leave.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := leave.NewService(store.Employees(), store.Requests())

SEE ALSO:
  - leave/store.go: Interface definitions
  - leave/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/leave-engine/leave"
)

// Store owns the database connection and hands out the typed repositories.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite store at dbPath. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each pooled connection to ":memory:" would get its own database;
	// a single connection also serializes the one SQLite writer.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// InTx runs fn inside one database transaction: every repository call made
// with the context fn receives joins that transaction. Rolls back if fn
// errors, commits otherwise.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(withTx(ctx, tx)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

var _ leave.Transactor = (*Store)(nil)

type txKey struct{}

func withTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFrom(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// dbtx is the subset of *sql.DB and *sql.Tx the repositories use.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Employees returns the employee directory backed by this database.
func (s *Store) Employees() *EmployeeDirectory {
	return &EmployeeDirectory{db: s.db}
}

// Requests returns the leave request store backed by this database.
func (s *Store) Requests() *RequestStore {
	return &RequestStore{db: s.db}
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		department TEXT NOT NULL,
		joining_date TEXT NOT NULL,
		total_leave_balance INTEGER NOT NULL,
		used_leaves INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_employees_email
		ON employees(email COLLATE NOCASE);

	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		reason TEXT NOT NULL,
		leave_type TEXT NOT NULL,
		status TEXT NOT NULL,
		applied_date TEXT NOT NULL,
		approved_by TEXT,
		approved_date TEXT,
		comments TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_requests_employee
		ON leave_requests(employee_id);
	CREATE INDEX IF NOT EXISTS idx_requests_status
		ON leave_requests(status);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEE DIRECTORY
// =============================================================================

type EmployeeDirectory struct {
	db *sql.DB
}

var _ leave.EmployeeDirectory = (*EmployeeDirectory)(nil)

func (d *EmployeeDirectory) conn(ctx context.Context) dbtx {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return d.db
}

func (d *EmployeeDirectory) Get(ctx context.Context, id string) (*leave.Employee, error) {
	row := d.conn(ctx).QueryRowContext(ctx, `
		SELECT id, name, email, department, joining_date, total_leave_balance, used_leaves
		FROM employees WHERE id = ?`, id)
	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return emp, err
}

func (d *EmployeeDirectory) Save(ctx context.Context, emp *leave.Employee) error {
	_, err := d.conn(ctx).ExecContext(ctx, `
		INSERT INTO employees (id, name, email, department, joining_date, total_leave_balance, used_leaves)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			department = excluded.department,
			joining_date = excluded.joining_date,
			total_leave_balance = excluded.total_leave_balance,
			used_leaves = excluded.used_leaves`,
		emp.ID, emp.Name, emp.Email, emp.Department, emp.JoiningDate.String(),
		emp.TotalLeaveBalance, emp.UsedLeaves)
	return err
}

func (d *EmployeeDirectory) ExistsByID(ctx context.Context, id string) (bool, error) {
	var n int
	err := d.conn(ctx).QueryRowContext(ctx,
		`SELECT COUNT(1) FROM employees WHERE id = ?`, id).Scan(&n)
	return n > 0, err
}

func (d *EmployeeDirectory) All(ctx context.Context) ([]*leave.Employee, error) {
	rows, err := d.conn(ctx).QueryContext(ctx, `
		SELECT id, name, email, department, joining_date, total_leave_balance, used_leaves
		FROM employees ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*leave.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (*leave.Employee, error) {
	var emp leave.Employee
	var joining string
	if err := row.Scan(&emp.ID, &emp.Name, &emp.Email, &emp.Department,
		&joining, &emp.TotalLeaveBalance, &emp.UsedLeaves); err != nil {
		return nil, err
	}
	d, err := leave.ParseDate(joining)
	if err != nil {
		return nil, fmt.Errorf("corrupt joining_date for %s: %w", emp.ID, err)
	}
	emp.JoiningDate = d
	return &emp, nil
}

// =============================================================================
// LEAVE REQUEST STORE
// =============================================================================

type RequestStore struct {
	db *sql.DB
}

var _ leave.RequestStore = (*RequestStore)(nil)

func (r *RequestStore) conn(ctx context.Context) dbtx {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return r.db
}

const requestColumns = `id, employee_id, start_date, end_date, reason, leave_type,
	status, applied_date, approved_by, approved_date, comments`

func (r *RequestStore) Get(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	row := r.conn(ctx).QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM leave_requests WHERE id = ?`, id)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return req, err
}

func (r *RequestStore) Save(ctx context.Context, req *leave.LeaveRequest) error {
	var approvedBy, approvedDate, comments any
	if req.ApprovedBy != "" {
		approvedBy = req.ApprovedBy
	}
	if req.ApprovedDate != nil {
		approvedDate = req.ApprovedDate.String()
	}
	if req.Comments != "" {
		comments = req.Comments
	}

	_, err := r.conn(ctx).ExecContext(ctx, `
		INSERT INTO leave_requests (`+requestColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			approved_by = excluded.approved_by,
			approved_date = excluded.approved_date,
			comments = excluded.comments`,
		req.ID, req.EmployeeID, req.StartDate.String(), req.EndDate.String(),
		req.Reason, string(req.Type), string(req.Status), req.AppliedDate.String(),
		approvedBy, approvedDate, comments)
	return err
}

func (r *RequestStore) ByEmployee(ctx context.Context, employeeID string) ([]*leave.LeaveRequest, error) {
	return r.query(ctx,
		`SELECT `+requestColumns+` FROM leave_requests WHERE employee_id = ? ORDER BY rowid`,
		employeeID)
}

func (r *RequestStore) ByStatus(ctx context.Context, status leave.Status) ([]*leave.LeaveRequest, error) {
	return r.query(ctx,
		`SELECT `+requestColumns+` FROM leave_requests WHERE status = ? ORDER BY rowid`,
		string(status))
}

func (r *RequestStore) All(ctx context.Context) ([]*leave.LeaveRequest, error) {
	return r.query(ctx,
		`SELECT `+requestColumns+` FROM leave_requests ORDER BY rowid`)
}

func (r *RequestStore) query(ctx context.Context, q string, args ...any) ([]*leave.LeaveRequest, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*leave.LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, rows.Err()
}

func scanRequest(row scanner) (*leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	var start, end, applied, typ, status string
	var approvedBy, approvedDate, comments sql.NullString

	if err := row.Scan(&req.ID, &req.EmployeeID, &start, &end, &req.Reason,
		&typ, &status, &applied, &approvedBy, &approvedDate, &comments); err != nil {
		return nil, err
	}

	var err error
	if req.StartDate, err = leave.ParseDate(start); err != nil {
		return nil, fmt.Errorf("corrupt start_date for %s: %w", req.ID, err)
	}
	if req.EndDate, err = leave.ParseDate(end); err != nil {
		return nil, fmt.Errorf("corrupt end_date for %s: %w", req.ID, err)
	}
	if req.AppliedDate, err = leave.ParseDate(applied); err != nil {
		return nil, fmt.Errorf("corrupt applied_date for %s: %w", req.ID, err)
	}

	req.Type = leave.LeaveType(typ)
	req.Status = leave.Status(status)
	req.ApprovedBy = approvedBy.String
	req.Comments = comments.String
	if approvedDate.Valid {
		d, err := leave.ParseDate(approvedDate.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt approved_date for %s: %w", req.ID, err)
		}
		req.ApprovedDate = &d
	}
	return &req, nil
}
