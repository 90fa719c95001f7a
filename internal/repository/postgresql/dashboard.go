package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetOverview reads every counter in a single round trip.
func (r *dashboardRepositoryImpl) GetOverview(ctx context.Context, from, to time.Time) (dashboard.OverviewStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE((SELECT jsonb_object_agg(status, n)
			          FROM (SELECT status, COUNT(*) AS n FROM delivery_orders GROUP BY status) s), '{}'::jsonb),
			(SELECT COUNT(*) FROM leave_requests WHERE status = 'pending'),
			(SELECT COUNT(*) FROM expenses WHERE status = 'pending'),
			(SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE status = 'pending'),
			(SELECT COUNT(*) FROM weigh_tickets WHERE ticket_date >= $1 AND ticket_date < $2),
			(SELECT COALESCE(SUM(tonnage), 0) FROM weigh_tickets WHERE ticket_date >= $1 AND ticket_date < $2)
	`

	var stats dashboard.OverviewStats
	err := q.QueryRow(ctx, query, from, to).Scan(
		&stats.OrdersByStatus,
		&stats.PendingLeave,
		&stats.PendingExpenses,
		&stats.PendingExpenseAmount,
		&stats.WeighTickets,
		&stats.Tonnage,
	)
	if err != nil {
		return dashboard.OverviewStats{}, fmt.Errorf("failed to get overview: %w", err)
	}
	return stats, nil
}
