package http

import (
	"encoding/json"
	"net/http"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/employee"
	"github.com/geoshift-hq/attendance-backend-go/internal/handler/http/middleware"
	"github.com/geoshift-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AssignBranch(w http.ResponseWriter, r *http.Request)
	Unassign(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// Create implements EmployeeHandler.
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	businessID, ok := middleware.BusinessIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}
	req.BusinessID = businessID

	result, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

// Get implements EmployeeHandler.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}

	result, err := h.employeeService.GetByID(r.Context(), chi.URLParam(r, "id"), businessID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}

	result, err := h.employeeService.List(r.Context(), businessID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements EmployeeHandler.
func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	businessID, ok := middleware.BusinessIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.BusinessID = businessID

	result, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements EmployeeHandler.
func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}

	if err := h.employeeService.Delete(r.Context(), chi.URLParam(r, "id"), businessID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted", nil)
}

// AssignBranch implements EmployeeHandler.
func (h *employeeHandlerImpl) AssignBranch(w http.ResponseWriter, r *http.Request) {
	var req employee.AssignBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	businessID, ok := middleware.BusinessIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	result, err := h.employeeService.AssignBranch(r.Context(), businessID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Branch assigned", result)
}

// Unassign implements EmployeeHandler. Deactivates a single assignment.
func (h *employeeHandlerImpl) Unassign(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}

	employeeID := chi.URLParam(r, "id")
	branchID := chi.URLParam(r, "branchID")

	err := h.employeeService.SetAssignmentStatus(r.Context(), businessID, employeeID, branchID, employee.AssignmentInactive)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch unassigned", nil)
}

// ListAssignments implements EmployeeHandler.
func (h *employeeHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}

	result, err := h.employeeService.ListAssignments(r.Context(), businessID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
