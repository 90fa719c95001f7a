package http

import (
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/driver_dashboard"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetOverview handles GET /dashboard?month=YYYY-MM
	GetOverview(w http.ResponseWriter, r *http.Request)
	// GetDriverDashboard handles GET /dashboard/driver
	GetDriverDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService       dashboard.DashboardService
	driverDashboardService driver_dashboard.DriverDashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, driverDashboardService driver_dashboard.DriverDashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService:       dashboardService,
		driverDashboardService: driverDashboardService,
	}
}

func (h *dashboardHandlerImpl) GetOverview(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetOverview(r.Context(), middleware.IdentityFrom(r.Context()), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *dashboardHandlerImpl) GetDriverDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.driverDashboardService.GetDashboard(r.Context(), middleware.IdentityFrom(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
