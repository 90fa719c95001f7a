package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/invitation"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
)

type InvitationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Claim(w http.ResponseWriter, r *http.Request)
}

type invitationHandlerImpl struct {
	invitationService invitation.InvitationService
}

func NewInvitationHandler(invitationService invitation.InvitationService) InvitationHandler {
	return &invitationHandlerImpl{invitationService: invitationService}
}

// Create implements InvitationHandler.
func (h *invitationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req invitation.CreateInvitationRequest
	if !decodeJSON(w, r, "CreateInvitation", &req) {
		return
	}

	inv, err := h.invitationService.Create(r.Context(), middleware.IdentityFrom(r.Context()), req)
	if err != nil {
		slog.Error("CreateInvitation service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Invitation created successfully", inv)
}

// List implements InvitationHandler. ?claimed=true|false narrows the result.
func (h *invitationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var claimed *bool
	if v := queryString(r, "claimed"); v != nil {
		b, err := strconv.ParseBool(*v)
		if err != nil {
			response.BadRequest(w, "claimed must be true or false", nil)
			return
		}
		claimed = &b
	}

	invitations, err := h.invitationService.List(r.Context(), middleware.IdentityFrom(r.Context()), claimed)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, invitations)
}

// Claim implements InvitationHandler.
func (h *invitationHandlerImpl) Claim(w http.ResponseWriter, r *http.Request) {
	result, err := h.invitationService.Claim(r.Context(), middleware.IdentityFrom(r.Context()))
	if err != nil {
		slog.Error("ClaimInvitation service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
