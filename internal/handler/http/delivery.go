package http

import (
	"log/slog"
	"mime"
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/delivery"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DeliveryHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetByOrderNumber(w http.ResponseWriter, r *http.Request)
	GetDetail(w http.ResponseWriter, r *http.Request)
	AssignDriver(w http.ResponseWriter, r *http.Request)
	Start(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	MarkInvoiced(w http.ResponseWriter, r *http.Request)
	UploadProof(w http.ResponseWriter, r *http.Request)
}

type deliveryHandlerImpl struct {
	deliveryService delivery.DeliveryService
}

func NewDeliveryHandler(deliveryService delivery.DeliveryService) DeliveryHandler {
	return &deliveryHandlerImpl{deliveryService: deliveryService}
}

// Create implements DeliveryHandler.
func (h *deliveryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req delivery.CreateDeliveryRequest
	if !decodeJSON(w, r, "CreateDelivery", &req) {
		return
	}

	order, err := h.deliveryService.Create(r.Context(), middleware.IdentityFrom(r.Context()), req)
	if err != nil {
		slog.Error("CreateDelivery service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Delivery order created successfully", order)
}

// List implements DeliveryHandler.
func (h *deliveryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter delivery.DeliveryFilter
	filter.Search = queryString(r, "search")
	filter.Status = queryString(r, "status")
	filter.DriverID = queryString(r, "driver_id")
	filter.Page, filter.Limit = pagination(r)

	result, err := h.deliveryService.List(r.Context(), middleware.IdentityFrom(r.Context()), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Orders, response.NewMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// Stats implements DeliveryHandler.
func (h *deliveryHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deliveryService.Stats(r.Context(), middleware.IdentityFrom(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

// Get implements DeliveryHandler.
func (h *deliveryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.deliveryService.Get(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, order)
}

// GetByOrderNumber implements DeliveryHandler.
func (h *deliveryHandlerImpl) GetByOrderNumber(w http.ResponseWriter, r *http.Request) {
	order, err := h.deliveryService.GetByOrderNumber(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "orderNumber"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, order)
}

// GetDetail implements DeliveryHandler.
func (h *deliveryHandlerImpl) GetDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.deliveryService.GetDetail(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, detail)
}

// AssignDriver implements DeliveryHandler.
func (h *deliveryHandlerImpl) AssignDriver(w http.ResponseWriter, r *http.Request) {
	var req delivery.AssignDriverRequest
	if !decodeJSON(w, r, "AssignDriver", &req) {
		return
	}

	order, err := h.deliveryService.AssignDriver(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("AssignDriver service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Driver assigned successfully", order)
}

// Start implements DeliveryHandler.
func (h *deliveryHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	order, err := h.deliveryService.StartDelivery(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Delivery started", order)
}

// Confirm implements DeliveryHandler. It accepts either JSON with a proof_ref
// obtained from UploadProof, or a multipart form carrying the photo itself.
func (h *deliveryHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := middleware.IdentityFrom(ctx)
	orderID := chi.URLParam(r, "id")

	var req delivery.ConfirmDeliveryRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}

		file, header, err := r.FormFile("proof")
		if err != nil && err != http.ErrMissingFile {
			slog.Error("Failed to get file from form", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
		if notes := r.FormValue("notes"); notes != "" {
			req.Notes = &notes
		}
		if file != nil {
			defer file.Close()
			order, err := h.deliveryService.ConfirmWithProof(ctx, identity, orderID, file, header, req.Notes)
			if err != nil {
				slog.Error("ConfirmWithProof service error", "error", err)
				response.HandleError(w, err)
				return
			}
			response.SuccessWithMessage(w, "Delivery confirmed", order)
			return
		}
	} else if !decodeJSON(w, r, "ConfirmDelivery", &req) {
		return
	}

	order, err := h.deliveryService.ConfirmDelivery(ctx, identity, orderID, req)
	if err != nil {
		slog.Error("ConfirmDelivery service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Delivery confirmed", order)
}

// MarkInvoiced implements DeliveryHandler.
func (h *deliveryHandlerImpl) MarkInvoiced(w http.ResponseWriter, r *http.Request) {
	order, err := h.deliveryService.MarkInvoiced(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Delivery marked as invoiced", order)
}

// UploadProof implements DeliveryHandler.
func (h *deliveryHandlerImpl) UploadProof(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, header, err := r.FormFile("proof")
	if err != nil {
		response.HandleError(w, delivery.ErrProofRequired)
		return
	}
	defer file.Close()

	ref, err := h.deliveryService.UploadProof(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"), file, header)
	if err != nil {
		slog.Error("UploadProof service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Proof uploaded successfully", map[string]string{"proof_ref": ref})
}
