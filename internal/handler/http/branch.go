package http

import (
	"encoding/json"
	"net/http"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/branch"
	"github.com/geoshift-hq/attendance-backend-go/internal/handler/http/middleware"
	"github.com/geoshift-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BranchHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type branchHandlerImpl struct {
	branchService branch.BranchService
}

func NewBranchHandler(branchService branch.BranchService) BranchHandler {
	return &branchHandlerImpl{
		branchService: branchService,
	}
}

// Create implements BranchHandler.
func (h *branchHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req branch.CreateBranchRequest
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

	result, err := h.branchService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Branch created", result)
}

// Get implements BranchHandler.
func (h *branchHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}

	result, err := h.branchService.GetByID(r.Context(), chi.URLParam(r, "id"), businessID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements BranchHandler.
func (h *branchHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}

	result, err := h.branchService.List(r.Context(), businessID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements BranchHandler.
func (h *branchHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req branch.UpdateBranchRequest
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

	result, err := h.branchService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements BranchHandler.
func (h *branchHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}

	if err := h.branchService.Delete(r.Context(), chi.URLParam(r, "id"), businessID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch deleted", nil)
}
