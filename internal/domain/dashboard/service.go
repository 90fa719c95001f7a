package dashboard

import (
	"context"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetOverview returns the admin overview; month format "YYYY-MM", default current month
	GetOverview(ctx context.Context, actor user.Identity, month string) (OverviewResponse, error)
}
