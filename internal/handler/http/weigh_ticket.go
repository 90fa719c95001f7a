package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/weigh_ticket"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WeighTicketHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type weighTicketHandlerImpl struct {
	weighTicketService weigh_ticket.WeighTicketService
}

func NewWeighTicketHandler(weighTicketService weigh_ticket.WeighTicketService) WeighTicketHandler {
	return &weighTicketHandlerImpl{weighTicketService: weighTicketService}
}

// Create implements WeighTicketHandler. The form carries the ticket as JSON
// in "data" and an optional photo in "image".
func (h *weighTicketHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	var req weigh_ticket.CreateWeighTicketRequest
	if err := json.Unmarshal([]byte(r.FormValue("data")), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid JSON in data field", nil)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil && err != http.ErrMissingFile {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	if file != nil {
		defer file.Close()
	}

	ticket, err := h.weighTicketService.Create(r.Context(), middleware.IdentityFrom(r.Context()), req, file, header)
	if err != nil {
		slog.Error("CreateWeighTicket service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Weigh ticket created successfully", ticket)
}

// List implements WeighTicketHandler.
func (h *weighTicketHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter weigh_ticket.WeighTicketFilter
	filter.Client = queryString(r, "client")
	filter.Page, filter.Limit = pagination(r)

	result, err := h.weighTicketService.List(r.Context(), middleware.IdentityFrom(r.Context()), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Tickets, response.NewMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// Get implements WeighTicketHandler.
func (h *weighTicketHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.weighTicketService.Get(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, ticket)
}
