package employee

import (
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeResponse struct {
	ID          string          `json:"id"`
	BusinessID  string          `json:"business_id"`
	FullName    string          `json:"full_name"`
	PhoneNumber string          `json:"phone_number"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	Status      string          `json:"status"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		BusinessID:  e.BusinessID,
		FullName:    e.FullName,
		PhoneNumber: e.PhoneNumber,
		HourlyRate:  e.HourlyRate,
		Status:      string(e.Status),
	}
}

type CreateEmployeeRequest struct {
	BusinessID  string          `json:"-"` // From JWT
	FullName    string          `json:"full_name"`
	PhoneNumber string          `json:"phone_number"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if len(r.FullName) > 150 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 150 characters",
		})
	}

	if !validator.IsValidPhoneNumber(r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "phone_number must be 8-15 digits",
		})
	}

	if !r.HourlyRate.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignBranchRequest struct {
	EmployeeID           string  `json:"employee_id"`
	BranchID             string  `json:"branch_id"`
	ScheduleStartsAt     *string `json:"schedule_starts_at,omitempty"` // HH:MM:SS
	ScheduleEndsAt       *string `json:"schedule_ends_at,omitempty"`   // HH:MM:SS
	LateToleranceMinutes *int    `json:"late_tolerance_minutes,omitempty"`
}

func (r *AssignBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id is required",
		})
	}

	if r.ScheduleStartsAt != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.ScheduleStartsAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "schedule_starts_at",
				Message: "schedule_starts_at must be in HH:MM:SS format",
			})
		}
	}
	if r.ScheduleEndsAt != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.ScheduleEndsAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "schedule_ends_at",
				Message: "schedule_ends_at must be in HH:MM:SS format",
			})
		}
	}

	if r.LateToleranceMinutes != nil && *r.LateToleranceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_tolerance_minutes",
			Message: "late_tolerance_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID          string           `json:"id"`
	BusinessID  string           `json:"-"` // From JWT
	FullName    *string          `json:"full_name,omitempty"`
	PhoneNumber *string          `json:"phone_number,omitempty"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate,omitempty"`
	Status      *string          `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.FullName != nil {
		if validator.IsEmpty(*r.FullName) {
			errs = append(errs, validator.ValidationError{
				Field:   "full_name",
				Message: "full_name must not be empty",
			})
		}
		if len(*r.FullName) > 150 {
			errs = append(errs, validator.ValidationError{
				Field:   "full_name",
				Message: "full_name must not exceed 150 characters",
			})
		}
	}

	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "phone_number must be 8-15 digits",
		})
	}

	if r.HourlyRate != nil && !r.HourlyRate.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must be greater than zero",
		})
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, EmployeeStatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, active, inactive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignmentResponse struct {
	ID                   string  `json:"id"`
	EmployeeID           string  `json:"employee_id"`
	BranchID             string  `json:"branch_id"`
	Status               string  `json:"status"`
	ScheduleStartsAt     *string `json:"schedule_starts_at,omitempty"`
	ScheduleEndsAt       *string `json:"schedule_ends_at,omitempty"`
	LateToleranceMinutes *int    `json:"late_tolerance_minutes,omitempty"`
}

func ToAssignmentResponse(a BranchAssignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:                   a.ID,
		EmployeeID:           a.EmployeeID,
		BranchID:             a.BranchID,
		Status:               string(a.Status),
		LateToleranceMinutes: a.LateToleranceMinutes,
	}
	if a.ScheduleStartsAt != nil {
		v := a.ScheduleStartsAt.Format("15:04:05")
		resp.ScheduleStartsAt = &v
	}
	if a.ScheduleEndsAt != nil {
		v := a.ScheduleEndsAt.Format("15:04:05")
		resp.ScheduleEndsAt = &v
	}
	return resp
}
