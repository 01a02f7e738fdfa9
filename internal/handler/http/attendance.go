package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/geoshift-hq/attendance-backend-go/internal/handler/http/middleware"
	"github.com/geoshift-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Check(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Check implements AttendanceHandler. The engine determines whether this is
// a check-in or a check-out from the employee's session state.
func (h *attendanceHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	h.check(w, r, nil)
}

// CheckIn implements AttendanceHandler with the action forced to check_in.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	action := string(attendance.ActionCheckIn)
	h.check(w, r, &action)
}

// CheckOut implements AttendanceHandler with the action forced to check_out.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	action := string(attendance.ActionCheckOut)
	h.check(w, r, &action)
}

func (h *attendanceHandlerImpl) check(w http.ResponseWriter, r *http.Request, action *string) {
	var req attendance.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	businessID, ok := middleware.BusinessIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}
	employeeID, ok := middleware.EmployeeIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing employee claim")
		return
	}

	req.BusinessID = businessID
	req.EmployeeID = employeeID
	if action != nil {
		req.Action = action
	}

	result, err := h.attendanceService.Check(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler. Admin view over the business's
// sessions with optional filters.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}

	filter := attendance.SessionFilter{}

	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("branch_id"); v != "" {
		filter.BranchID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := attendance.SessionStatus(v)
		filter.Status = &status
	}
	if v := r.URL.Query().Get("date_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "date_from must be in YYYY-MM-DD format", nil)
			return
		}
		filter.DateFrom = &t
	}
	if v := r.URL.Query().Get("date_to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "date_to must be in YYYY-MM-DD format", nil)
			return
		}
		// Inclusive upper bound.
		end := t.AddDate(0, 0, 1)
		filter.DateTo = &end
	}
	if v := r.URL.Query().Get("page"); v != "" {
		filter.Page, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}

	result, err := h.attendanceService.ListSessions(r.Context(), businessID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Sessions, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}

	sessionID := chi.URLParam(r, "id")

	result, err := h.attendanceService.GetSession(r.Context(), sessionID, businessID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
