package driver_dashboard

import (
	"context"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
)

// DriverDashboardService builds the per-driver snapshot on every call.
type DriverDashboardService interface {
	GetDashboard(ctx context.Context, actor user.Identity) (DashboardResponse, error)
}
