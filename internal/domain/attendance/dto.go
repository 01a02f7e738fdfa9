package attendance

import (
	"time"

	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/geo"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/validator"
)

// CheckRequest is a geolocated check-in/check-out attempt. Action is
// optional: when absent the engine determines it from the employee's session
// state for today.
type CheckRequest struct {
	EmployeeID string  `json:"-"` // From JWT
	BusinessID string  `json:"-"` // From JWT
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Action     *string `json:"action,omitempty"`
}

func (r *CheckRequest) Validate() error {
	var errs validator.ValidationErrors

	coord := geo.Coordinate{Latitude: r.Latitude, Longitude: r.Longitude}
	if err := coord.Validate(); err != nil {
		if coordErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, coordErrs...)
		}
	}

	if r.Action != nil && !validator.IsInSlice(*r.Action, ActionValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: check_in, check_out",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Coordinate returns the reported position.
func (r *CheckRequest) Coordinate() geo.Coordinate {
	return geo.Coordinate{Latitude: r.Latitude, Longitude: r.Longitude}
}

// ExplicitAction returns the caller-requested action, or "" when the engine
// should determine it.
func (r *CheckRequest) ExplicitAction() Action {
	if r.Action == nil {
		return ""
	}
	return Action(*r.Action)
}

type SessionResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName *string  `json:"employee_name,omitempty"`
	BranchID     string   `json:"branch_id"`
	BranchName   *string  `json:"branch_name,omitempty"`
	Timezone     string   `json:"timezone"`
	Action       string   `json:"action"`
	CheckInAt    *string  `json:"check_in_at,omitempty"`
	CheckOutAt   *string  `json:"check_out_at,omitempty"`
	IsLate       *bool    `json:"is_late,omitempty"`
	Status       string   `json:"status"`
	AutoClosed   bool     `json:"auto_closed"`
	DistanceM    *float64 `json:"distance_meters,omitempty"`
}

// ToResponse renders a session with branch-local timestamps.
func ToResponse(s Session, action Action, distanceMeters *float64) SessionResponse {
	resp := SessionResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		BranchID:     s.BranchID,
		BranchName:   s.BranchName,
		Timezone:     s.Timezone,
		Action:       string(action),
		IsLate:       s.IsLate,
		Status:       string(s.Status),
		AutoClosed:   s.AutoClosed,
		DistanceM:    distanceMeters,
	}
	if s.CheckInAt != nil {
		v := s.CheckInLocal().Format(time.RFC3339)
		resp.CheckInAt = &v
	}
	if s.CheckOutAt != nil {
		v := s.CheckOutLocal().Format(time.RFC3339)
		resp.CheckOutAt = &v
	}
	return resp
}

// SessionFilter narrows session listings.
type SessionFilter struct {
	EmployeeID *string
	BranchID   *string
	Status     *SessionStatus
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}

type ListSessionsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Sessions   []SessionResponse `json:"sessions"`
}
