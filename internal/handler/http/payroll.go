package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// Calculate implements PayrollHandler.
func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculateSalariesRequest
	if !decodeJSON(w, r, "CalculateSalaries", &req) {
		return
	}

	result, err := h.payrollService.CalculateSalaries(r.Context(), middleware.IdentityFrom(r.Context()), req)
	if err != nil {
		slog.Error("CalculateSalaries service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Salaries calculated", result)
}

// List implements PayrollHandler.
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter payroll.SalaryFilter
	filter.Month = queryInt(r, "month")
	filter.Year = queryInt(r, "year")
	filter.Period = queryString(r, "period")
	filter.Status = queryString(r, "status")
	filter.DriverID = queryString(r, "driver_id")
	filter.Page, filter.Limit = pagination(r)

	result, err := h.payrollService.List(r.Context(), middleware.IdentityFrom(r.Context()), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Records, response.NewMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// MarkPaid implements PayrollHandler.
func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req payroll.MarkPaidRequest
	if !decodeJSON(w, r, "MarkSalariesPaid", &req) {
		return
	}

	result, err := h.payrollService.MarkPaid(r.Context(), middleware.IdentityFrom(r.Context()), req)
	if err != nil {
		slog.Error("MarkSalariesPaid service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Salary records marked as paid", result)
}
