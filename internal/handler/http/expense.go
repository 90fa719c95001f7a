package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ExpenseHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	UploadReceipt(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type expenseHandlerImpl struct {
	expenseService expense.ExpenseService
}

func NewExpenseHandler(expenseService expense.ExpenseService) ExpenseHandler {
	return &expenseHandlerImpl{expenseService: expenseService}
}

// Submit implements ExpenseHandler.
func (h *expenseHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req expense.SubmitExpenseRequest
	if !decodeJSON(w, r, "SubmitExpense", &req) {
		return
	}

	created, err := h.expenseService.Submit(r.Context(), middleware.IdentityFrom(r.Context()), req)
	if err != nil {
		slog.Error("SubmitExpense service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Expense submitted successfully", created)
}

// UploadReceipt implements ExpenseHandler.
func (h *expenseHandlerImpl) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, header, err := r.FormFile("receipt")
	if err != nil {
		response.BadRequest(w, "receipt file is required", nil)
		return
	}
	defer file.Close()

	ref, err := h.expenseService.UploadReceipt(r.Context(), middleware.IdentityFrom(r.Context()), file, header)
	if err != nil {
		slog.Error("UploadReceipt service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Receipt uploaded successfully", map[string]string{"receipt_ref": ref})
}

// ListMine implements ExpenseHandler.
func (h *expenseHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenseService.ListMine(r.Context(), middleware.IdentityFrom(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, expenses)
}

// ListAll implements ExpenseHandler.
func (h *expenseHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	var filter expense.ExpenseFilter
	filter.Status = queryString(r, "status")
	filter.Page, filter.Limit = pagination(r)

	result, err := h.expenseService.ListAll(r.Context(), middleware.IdentityFrom(r.Context()), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Expenses, response.NewMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// UpdateStatus implements ExpenseHandler.
func (h *expenseHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req expense.UpdateExpenseStatusRequest
	if !decodeJSON(w, r, "UpdateExpenseStatus", &req) {
		return
	}

	updated, err := h.expenseService.UpdateStatus(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("UpdateExpenseStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Expense "+updated.Status, updated)
}
