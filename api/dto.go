/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Handlers only validate shape (parseable dates, known enum strings); all
  business rules live in the leave package and are reported through its
  error taxonomy.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import "github.com/warp/leave-engine/leave"

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Department      string `json:"department"`
	JoiningDate     string `json:"joining_date"`
	TotalLeaves     int    `json:"total_leaves"`
	UsedLeaves      int    `json:"used_leaves"`
	AvailableLeaves int    `json:"available_leaves"`
}

func toEmployeeDTO(e *leave.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:              e.ID,
		Name:            e.Name,
		Email:           e.Email,
		Department:      e.Department,
		JoiningDate:     e.JoiningDate.String(),
		TotalLeaves:     e.TotalLeaveBalance,
		UsedLeaves:      e.UsedLeaves,
		AvailableLeaves: e.AvailableLeaves(),
	}
}

// CreateEmployeeRequest is the request to onboard an employee.
type CreateEmployeeRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	JoiningDate string `json:"joining_date"`
}

// BalanceDTO is the balance summary for a single employee.
type BalanceDTO struct {
	EmployeeID      string `json:"employee_id"`
	TotalLeaves     int    `json:"total_leaves"`
	UsedLeaves      int    `json:"used_leaves"`
	AvailableLeaves int    `json:"available_leaves"`
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

// LeaveRequestDTO represents a leave request in API responses.
type LeaveRequestDTO struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Days         int    `json:"days"`
	Reason       string `json:"reason"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	AppliedDate  string `json:"applied_date"`
	ApprovedBy   string `json:"approved_by,omitempty"`
	ApprovedDate string `json:"approved_date,omitempty"`
	Comments     string `json:"comments,omitempty"`
}

func toRequestDTO(r *leave.LeaveRequest) LeaveRequestDTO {
	dto := LeaveRequestDTO{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		StartDate:   r.StartDate.String(),
		EndDate:     r.EndDate.String(),
		Days:        r.Days(),
		Reason:      r.Reason,
		Type:        string(r.Type),
		Status:      string(r.Status),
		AppliedDate: r.AppliedDate.String(),
		ApprovedBy:  r.ApprovedBy,
		Comments:    r.Comments,
	}
	if r.ApprovedDate != nil {
		dto.ApprovedDate = r.ApprovedDate.String()
	}
	return dto
}

func toRequestDTOs(reqs []*leave.LeaveRequest) []LeaveRequestDTO {
	dtos := make([]LeaveRequestDTO, len(reqs))
	for i, r := range reqs {
		dtos[i] = toRequestDTO(r)
	}
	return dtos
}

// ApplyRequest is the request body for a new leave application.
type ApplyRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
	Type       string `json:"type"`
}

// DecisionRequest is the request body for approve/reject.
type DecisionRequest struct {
	By       string `json:"by"`
	Comments string `json:"comments,omitempty"`
}

// StatsDTO is the aggregate count of requests by status.
type StatsDTO struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Cancelled int `json:"cancelled"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
