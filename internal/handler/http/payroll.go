package http

import (
	"net/http"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/payroll"
	"github.com/geoshift-hq/attendance-backend-go/internal/handler/http/middleware"
	"github.com/geoshift-hq/attendance-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Daily(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

func reportRequestFromQuery(r *http.Request) (payroll.ReportRequest, bool) {
	businessID, ok := middleware.BusinessIDFromContext(r)
	if !ok {
		return payroll.ReportRequest{}, false
	}

	req := payroll.ReportRequest{
		BusinessID: businessID,
		DateFrom:   r.URL.Query().Get("date_from"),
		DateTo:     r.URL.Query().Get("date_to"),
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		req.EmployeeID = &v
	}
	return req, true
}

// Daily implements PayrollHandler.
func (h *payrollHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	req, ok := reportRequestFromQuery(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}

	result, err := h.payrollService.DailyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements PayrollHandler.
func (h *payrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	req, ok := reportRequestFromQuery(r)
	if !ok {
		response.Unauthorized(w, "Missing business claim")
		return
	}

	result, err := h.payrollService.PeriodReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
