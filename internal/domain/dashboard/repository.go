package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OverviewStats combines counts read by the admin overview in a single query.
type OverviewStats struct {
	OrdersByStatus       map[string]int64
	PendingLeave         int64
	PendingExpenses      int64
	PendingExpenseAmount decimal.Decimal
	WeighTickets         int64
	Tonnage              decimal.Decimal
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetOverview returns back-office counters; weigh tickets are limited to [from, to).
	GetOverview(ctx context.Context, from, to time.Time) (OverviewStats, error)
}
