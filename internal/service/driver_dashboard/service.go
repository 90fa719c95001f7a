package driver_dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/delivery"
	driverDashboard "github.com/cmlabs-hris/fleet-backend-go/internal/domain/driver_dashboard"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

type DriverDashboardServiceImpl struct {
	users    user.UserRepository
	orders   delivery.DeliveryOrderRepository
	expenses expense.ExpenseRepository
	location *time.Location
	now      func() time.Time
}

func NewDriverDashboardService(users user.UserRepository, orders delivery.DeliveryOrderRepository, expenses expense.ExpenseRepository, location *time.Location) *DriverDashboardServiceImpl {
	return &DriverDashboardServiceImpl{
		users:    users,
		orders:   orders,
		expenses: expenses,
		location: location,
		now:      time.Now,
	}
}

// GetDashboard loads the driver, their orders and their expenses in parallel
// and derives the snapshot from them.
func (s *DriverDashboardServiceImpl) GetDashboard(ctx context.Context, actor user.Identity) (driverDashboard.DashboardResponse, error) {
	if !actor.IsAuthenticated() {
		return driverDashboard.DashboardResponse{}, auth.ErrUnauthorized
	}
	if actor.Role != user.RoleDriver {
		return driverDashboard.DashboardResponse{}, user.ErrAccessDenied
	}

	var (
		driver   user.User
		orders   []delivery.DeliveryOrder
		expenses []expense.Expense
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		u, err := s.users.GetByID(gCtx, actor.UserID)
		if err != nil {
			return err
		}
		driver = u
		return nil
	})

	g.Go(func() error {
		data, err := s.orders.ListByDriver(gCtx, actor.UserID)
		if err != nil {
			return fmt.Errorf("failed to list driver orders: %w", err)
		}
		orders = data
		return nil
	})

	g.Go(func() error {
		data, err := s.expenses.ListBySubmitter(gCtx, actor.UserID)
		if err != nil {
			return fmt.Errorf("failed to list driver expenses: %w", err)
		}
		expenses = data
		return nil
	})

	if err := g.Wait(); err != nil {
		return driverDashboard.DashboardResponse{}, err
	}

	snap := driverDashboard.BuildSnapshot(s.now().In(s.location), orders, expenses)
	return driverDashboard.NewDashboardResponse(driver, snap), nil
}

var _ driverDashboard.DriverDashboardService = (*DriverDashboardServiceImpl)(nil)
