package branch

import (
	"errors"

	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/geo"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/validator"
)

// BranchResponse represents the response structure for a branch.
type BranchResponse struct {
	ID                   string  `json:"id"`
	BusinessID           string  `json:"business_id"`
	Name                 string  `json:"name"`
	Address              *string `json:"address,omitempty"`
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	RadiusMeters         int     `json:"radius_meters"`
	Timezone             string  `json:"timezone"`
	OpensAt              string  `json:"opens_at"`
	ClosesAt             string  `json:"closes_at"`
	LateToleranceMinutes int     `json:"late_tolerance_minutes"`
	Status               string  `json:"status"`
}

func ToResponse(b Branch) BranchResponse {
	return BranchResponse{
		ID:                   b.ID,
		BusinessID:           b.BusinessID,
		Name:                 b.Name,
		Address:              b.Address,
		Latitude:             b.Latitude,
		Longitude:            b.Longitude,
		RadiusMeters:         b.RadiusMeters,
		Timezone:             b.Timezone,
		OpensAt:              b.OpensAt.Format("15:04:05"),
		ClosesAt:             b.ClosesAt.Format("15:04:05"),
		LateToleranceMinutes: b.LateToleranceMinutes,
		Status:               string(b.Status),
	}
}

// CreateBranchRequest represents the request structure for creating a branch.
type CreateBranchRequest struct {
	BusinessID           string  `json:"-"` // From JWT
	Name                 string  `json:"name"`
	Address              *string `json:"address,omitempty"`
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	RadiusMeters         int     `json:"radius_meters"`
	Timezone             string  `json:"timezone"`
	OpensAt              string  `json:"opens_at"`  // HH:MM:SS local wall clock
	ClosesAt             string  `json:"closes_at"` // HH:MM:SS local wall clock
	LateToleranceMinutes int     `json:"late_tolerance_minutes"`
}

func (r *CreateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	coord := geo.Coordinate{Latitude: r.Latitude, Longitude: r.Longitude}
	if err := coord.Validate(); err != nil {
		var coordErrs validator.ValidationErrors
		if errors.As(err, &coordErrs) {
			errs = append(errs, coordErrs...)
		}
	}

	if r.RadiusMeters < 10 || r.RadiusMeters > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be between 10 and 200",
		})
	}

	if !validator.IsValidTimezone(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA timezone name",
		})
	}

	if _, ok := validator.IsValidTimeOfDay(r.OpensAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "opens_at",
			Message: "opens_at must be in HH:MM:SS format",
		})
	}
	if _, ok := validator.IsValidTimeOfDay(r.ClosesAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "closes_at",
			Message: "closes_at must be in HH:MM:SS format",
		})
	}

	if r.LateToleranceMinutes < 0 {
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

// UpdateBranchRequest represents the request structure for updating a branch.
type UpdateBranchRequest struct {
	ID                   string   `json:"id"`
	BusinessID           string   `json:"-"` // From JWT
	Name                 *string  `json:"name,omitempty"`
	Address              *string  `json:"address,omitempty"`
	Latitude             *float64 `json:"latitude,omitempty"`
	Longitude            *float64 `json:"longitude,omitempty"`
	RadiusMeters         *int     `json:"radius_meters,omitempty"`
	Timezone             *string  `json:"timezone,omitempty"`
	OpensAt              *string  `json:"opens_at,omitempty"`
	ClosesAt             *string  `json:"closes_at,omitempty"`
	LateToleranceMinutes *int     `json:"late_tolerance_minutes,omitempty"`
	Status               *string  `json:"status,omitempty"`
}

func (r *UpdateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not be empty",
			})
		}
		if len(*r.Name) > 100 {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not exceed 100 characters",
			})
		}
	}

	if r.RadiusMeters != nil && (*r.RadiusMeters < 10 || *r.RadiusMeters > 200) {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be between 10 and 200",
		})
	}

	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA timezone name",
		})
	}

	if r.OpensAt != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.OpensAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "opens_at",
				Message: "opens_at must be in HH:MM:SS format",
			})
		}
	}
	if r.ClosesAt != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.ClosesAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "closes_at",
				Message: "closes_at must be in HH:MM:SS format",
			})
		}
	}

	if r.LateToleranceMinutes != nil && *r.LateToleranceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_tolerance_minutes",
			Message: "late_tolerance_minutes must not be negative",
		})
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, BranchStatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: active, inactive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
