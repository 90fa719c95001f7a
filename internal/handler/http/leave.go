package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

func leaveFilterFrom(r *http.Request) leave.LeaveFilter {
	var filter leave.LeaveFilter
	filter.Status = queryString(r, "status")
	filter.Page, filter.Limit = pagination(r)
	return filter
}

// CreateRequest implements LeaveHandler.
func (l *leaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequest
	if !decodeJSON(w, r, "CreateLeaveRequest", &req) {
		return
	}

	leaveRequest, err := l.leaveService.RequestLeave(r.Context(), middleware.IdentityFrom(r.Context()), req)
	if err != nil {
		slog.Error("CreateLeaveRequest service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", leaveRequest)
}

// GetMyRequests implements LeaveHandler.
func (l *leaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	result, err := l.leaveService.ListMine(r.Context(), middleware.IdentityFrom(r.Context()), leaveFilterFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Requests, response.NewMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// ListRequests implements LeaveHandler.
func (l *leaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := leaveFilterFrom(r)
	filter.UserID = queryString(r, "user_id")

	result, err := l.leaveService.ListAll(r.Context(), middleware.IdentityFrom(r.Context()), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Requests, response.NewMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// ListPending implements LeaveHandler.
func (l *leaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := l.leaveService.GetPendingWithDetails(r.Context(), middleware.IdentityFrom(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, pending)
}

// Stats implements LeaveHandler.
func (l *leaveHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := l.leaveService.Stats(r.Context(), middleware.IdentityFrom(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

// GetRequest implements LeaveHandler.
func (l *leaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	leaveRequest, err := l.leaveService.Get(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaveRequest)
}

// UpdateStatus implements LeaveHandler.
func (l *leaveHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveStatusRequest
	if !decodeJSON(w, r, "UpdateLeaveStatus", &req) {
		return
	}

	leaveRequest, err := l.leaveService.UpdateLeaveStatus(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("UpdateLeaveStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request "+leaveRequest.Status, leaveRequest)
}
