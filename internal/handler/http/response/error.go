package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/branch"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/business"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/employee"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/payroll"
	"github.com/geoshift-hq/attendance-backend-go/internal/domain/schedule"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Typed attendance errors carry diagnostics for the client.
	var geofenceErr *attendance.GeofenceError
	if errors.As(err, &geofenceErr) {
		BadRequest(w, err.Error(), map[string]string{
			"nearest_distance_meters": fmt.Sprintf("%.1f", geofenceErr.NearestDistanceMeters),
		})
		return
	}

	var mismatchErr *attendance.BranchMismatchError
	if errors.As(err, &mismatchErr) {
		Conflict(w, err.Error())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrNotAssigned):
		Forbidden(w, "Employee has no active branch assignment")
	case errors.Is(err, attendance.ErrDuplicateSession):
		Conflict(w, "An active session already exists for this employee")
	case errors.Is(err, attendance.ErrNoActiveSession):
		BadRequest(w, "No active session to check out", nil)
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Session not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleConfig):
		BadRequest(w, "No resolvable schedule for this branch", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNotActive):
		Forbidden(w, "Employee is not active")
	case errors.Is(err, employee.ErrPhoneNumberExists):
		Conflict(w, "Phone number already registered in this business")
	case errors.Is(err, employee.ErrAssignmentNotFound):
		NotFound(w, "Branch assignment not found")
	case errors.Is(err, employee.ErrAssignmentExists):
		Conflict(w, "Employee is already assigned to this branch")
	case errors.Is(err, employee.ErrCannotDeleteOpen):
		Conflict(w, "Employee has an open session and cannot be deleted")
	case errors.Is(err, employee.ErrInvalidHourlyRate):
		BadRequest(w, "Hourly rate must be greater than zero", nil)

	// Branch domain errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, branch.ErrBranchNameExists):
		Conflict(w, "Branch name already exists in this business")
	case errors.Is(err, branch.ErrBranchInactive):
		BadRequest(w, "Branch is inactive", nil)

	// Business domain errors
	case errors.Is(err, business.ErrBusinessNotFound):
		NotFound(w, "Business not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSessionNotCompleted):
		BadRequest(w, "Session is not completed", nil)
	case errors.Is(err, payroll.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
