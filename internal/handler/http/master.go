package http

import (
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/material"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/master"
)

type MasterHandler interface {
	// Client handlers
	CreateClient(w http.ResponseWriter, r *http.Request)
	ListClients(w http.ResponseWriter, r *http.Request)

	// Material handlers
	CreateMaterial(w http.ResponseWriter, r *http.Request)
	ListMaterials(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== CLIENT HANDLERS ====================

func (h *masterHandlerImpl) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req client.CreateClientRequest
	if !decodeJSON(w, r, "CreateClient", &req) {
		return
	}

	result, err := h.masterService.CreateClient(r.Context(), middleware.IdentityFrom(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Client created successfully", result)
}

func (h *masterHandlerImpl) ListClients(w http.ResponseWriter, r *http.Request) {
	results, err := h.masterService.ListClients(r.Context(), middleware.IdentityFrom(r.Context()), r.URL.Query().Get("search"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ==================== MATERIAL HANDLERS ====================

func (h *masterHandlerImpl) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req material.CreateMaterialRequest
	if !decodeJSON(w, r, "CreateMaterial", &req) {
		return
	}

	result, err := h.masterService.CreateMaterial(r.Context(), middleware.IdentityFrom(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Material created successfully", result)
}

func (h *masterHandlerImpl) ListMaterials(w http.ResponseWriter, r *http.Request) {
	results, err := h.masterService.ListMaterials(r.Context(), middleware.IdentityFrom(r.Context()), r.URL.Query().Get("search"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
