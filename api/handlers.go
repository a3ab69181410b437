/*
handlers.go - HTTP API handlers for the leave management engine

PURPOSE:
  Exposes the validation/lifecycle engines via REST. Handles HTTP
  request/response and JSON serialization; every business decision is
  delegated to the leave package.

ENDPOINTS:
  Employees:
    GET    /api/employees               List all employees
    POST   /api/employees               Onboard an employee
    GET    /api/employees/{id}          Get employee details
    GET    /api/employees/{id}/balance  Balance summary
    GET    /api/employees/{id}/requests Leave history

  Requests:
    POST   /api/requests                Apply for leave
    GET    /api/requests                List all requests
    GET    /api/requests/pending        Pending queue
    GET    /api/requests/stats          Counts by status
    POST   /api/requests/{id}/approve   Approve
    POST   /api/requests/{id}/reject    Reject
    POST   /api/requests/{id}/cancel    Cancel

ERROR HANDLING:
  The leave error taxonomy maps onto HTTP status codes:
  - 400: ValidationFailed (admissibility rule broken)
  - 404: NotFound
  - 409: InvalidStateTransition, Conflict (overlap, duplicate email)
  - 422: InsufficientBalance
  - 500: everything else

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/leave-engine/leave"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Directory *leave.Directory
	Service   *leave.Service
}

// NewHandler creates a new handler over the directory and lifecycle services.
func NewHandler(directory *leave.Directory, service *leave.Service) *Handler {
	return &Handler{Directory: directory, Service: service}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Directory.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee onboards a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	joining, err := leave.ParseDate(req.JoiningDate)
	if err != nil {
		writeBadRequest(w, "invalid joining_date format (use YYYY-MM-DD)")
		return
	}

	emp, err := h.Directory.AddEmployee(r.Context(), req.Name, req.Email, req.Department, joining)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Directory.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// GetBalance returns the balance summary for an employee.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Directory.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BalanceDTO{
		EmployeeID:      emp.ID,
		TotalLeaves:     emp.TotalLeaveBalance,
		UsedLeaves:      emp.UsedLeaves,
		AvailableLeaves: emp.AvailableLeaves(),
	})
}

// GetHistory returns the leave history for an employee, oldest first.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.Service.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTOs(reqs))
}

// =============================================================================
// LEAVE REQUEST HANDLERS
// =============================================================================

// Apply submits a new leave application.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	var body ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	start, err := leave.ParseDate(body.StartDate)
	if err != nil {
		writeBadRequest(w, "invalid start_date format (use YYYY-MM-DD)")
		return
	}
	end, err := leave.ParseDate(body.EndDate)
	if err != nil {
		writeBadRequest(w, "invalid end_date format (use YYYY-MM-DD)")
		return
	}
	typ, ok := leave.ParseLeaveType(body.Type)
	if !ok {
		writeBadRequest(w, "unknown leave type: "+body.Type)
		return
	}

	req, err := h.Service.Apply(r.Context(), body.EmployeeID, start, end, body.Reason, typ)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRequestDTO(req))
}

// ListRequests returns every leave request.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.Service.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTOs(reqs))
}

// ListPending returns the pending queue.
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.Service.Pending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTOs(reqs))
}

// GetStats returns request counts by status.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Service.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	stats := StatsDTO{
		Pending:   counts[leave.StatusPending],
		Approved:  counts[leave.StatusApproved],
		Rejected:  counts[leave.StatusRejected],
		Cancelled: counts[leave.StatusCancelled],
	}
	stats.Total = stats.Pending + stats.Approved + stats.Rejected + stats.Cancelled
	writeJSON(w, http.StatusOK, stats)
}

// ApproveRequest approves a pending request.
func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	var body DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if body.By == "" {
		writeBadRequest(w, "approver name is required")
		return
	}

	req, err := h.Service.Approve(r.Context(), chi.URLParam(r, "id"), body.By)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(req))
}

// RejectRequest rejects a pending request.
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var body DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if body.By == "" {
		writeBadRequest(w, "rejecter name is required")
		return
	}

	req, err := h.Service.Reject(r.Context(), chi.URLParam(r, "id"), body.By, body.Comments)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(req))
}

// CancelRequest cancels a pending or approved request.
func (h *Handler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	req, err := h.Service.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(req))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
}

// writeError maps the leave error taxonomy to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, leave.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, leave.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, leave.ErrInvalidTransition), errors.Is(err, leave.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, leave.ErrInsufficientBalance):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
