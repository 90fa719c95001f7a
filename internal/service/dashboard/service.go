package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/delivery"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
)

type DashboardServiceImpl struct {
	repo     dashboard.DashboardRepository
	location *time.Location
	now      func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, location *time.Location) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		repo:     repo,
		location: location,
		now:      time.Now,
	}
}

// parseMonth parses YYYY-MM format, defaults to current month
func (s *DashboardServiceImpl) parseMonth(month string) (time.Time, error) {
	if month == "" {
		now := s.now().In(s.location)
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.location), nil
	}

	parsed, err := time.ParseInLocation("2006-01", month, s.location)
	if err != nil {
		return time.Time{}, validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		}}
	}
	return parsed, nil
}

// GetOverview implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetOverview(ctx context.Context, actor user.Identity, month string) (dashboard.OverviewResponse, error) {
	if !user.HasPermission(actor.Role, user.PermissionDashboardView) {
		return dashboard.OverviewResponse{}, user.ErrInsufficientPermissions
	}

	from, err := s.parseMonth(month)
	if err != nil {
		return dashboard.OverviewResponse{}, err
	}

	stats, err := s.repo.GetOverview(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		return dashboard.OverviewResponse{}, fmt.Errorf("failed to get overview: %w", err)
	}

	byStatus := make(map[string]int64, len(delivery.AllStatuses))
	var total int64
	for _, st := range delivery.AllStatuses {
		n := stats.OrdersByStatus[string(st)]
		byStatus[string(st)] = n
		total += n
	}

	return dashboard.OverviewResponse{
		Month:                from.Format("2006-01"),
		OrdersByStatus:       byStatus,
		TotalOrders:          total,
		PendingLeave:         stats.PendingLeave,
		PendingExpenses:      stats.PendingExpenses,
		PendingExpenseAmount: stats.PendingExpenseAmount,
		WeighTickets:         stats.WeighTickets,
		TotalTonnage:         stats.Tonnage,
	}, nil
}

var _ dashboard.DashboardService = (*DashboardServiceImpl)(nil)
