package driver_dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/delivery"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	user.UserRepository
	users map[string]user.User
}

func (f fakeUsers) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type fakeOrders struct {
	delivery.DeliveryOrderRepository
	orders []delivery.DeliveryOrder
}

func (f fakeOrders) ListByDriver(_ context.Context, driverID string) ([]delivery.DeliveryOrder, error) {
	var out []delivery.DeliveryOrder
	for _, o := range f.orders {
		if o.IsAssignedTo(driverID) {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeExpenses struct {
	expense.ExpenseRepository
	expenses []expense.Expense
}

func (f fakeExpenses) ListBySubmitter(_ context.Context, userID string) ([]expense.Expense, error) {
	var out []expense.Expense
	for _, e := range f.expenses {
		if e.SubmittedBy == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

var wib = time.FixedZone("WIB", 7*60*60)

func order(number string, status delivery.Status, deliveredAt *time.Time) delivery.DeliveryOrder {
	driverID := "d-1"
	return delivery.DeliveryOrder{ID: number, OrderNumber: number, Status: status, DriverID: &driverID, DeliveryDate: deliveredAt}
}

func at(t time.Time) *time.Time { return &t }

func newService() *DriverDashboardServiceImpl {
	users := fakeUsers{users: map[string]user.User{
		"d-1": {ID: "d-1", Name: "Andi", Email: "andi@example.com", Role: user.RoleDriver},
	}}
	otherDriver := "d-2"
	orders := fakeOrders{orders: []delivery.DeliveryOrder{
		order("DO-2026-0001", delivery.StatusAssigned, nil),
		order("DO-2026-0002", delivery.StatusInProgress, nil),
		order("DO-2026-0003", delivery.StatusDelivered, at(time.Date(2026, 4, 22, 8, 0, 0, 0, wib))),
		order("DO-2026-0004", delivery.StatusDelivered, at(time.Date(2026, 4, 20, 15, 0, 0, 0, wib))),
		order("DO-2026-0005", delivery.StatusInvoiced, at(time.Date(2026, 4, 18, 9, 0, 0, 0, wib))),
		order("DO-2026-0006", delivery.StatusPending, nil),
		// still the 21st in UTC but already the 22nd in WIB
		order("DO-2026-0007", delivery.StatusDelivered, at(time.Date(2026, 4, 21, 20, 0, 0, 0, time.UTC))),
		{ID: "DO-2026-0008", Status: delivery.StatusAssigned, DriverID: &otherDriver},
	}}
	expenses := fakeExpenses{expenses: []expense.Expense{
		{ID: "e-1", SubmittedBy: "d-1", Amount: decimal.NewFromInt(100), Status: expense.StatusPending},
		{ID: "e-2", SubmittedBy: "d-1", Amount: decimal.RequireFromString("50.5"), Status: expense.StatusPending},
		{ID: "e-3", SubmittedBy: "d-1", Amount: decimal.NewFromInt(30), Status: expense.StatusApproved},
		{ID: "e-4", SubmittedBy: "d-2", Amount: decimal.NewFromInt(999), Status: expense.StatusPending},
	}}

	svc := NewDriverDashboardService(users, orders, expenses, wib)
	svc.now = func() time.Time { return time.Date(2026, 4, 22, 3, 0, 0, 0, time.UTC) }
	return svc
}

func TestGetDashboard(t *testing.T) {
	svc := newService()

	resp, err := svc.GetDashboard(context.Background(), user.Identity{UserID: "d-1", Role: user.RoleDriver})
	require.NoError(t, err)

	assert.Equal(t, "Andi", resp.Driver.Name)
	assert.True(t, time.Date(2026, 4, 19, 0, 0, 0, 0, wib).Equal(resp.WeekStart))

	assert.Equal(t, 4, resp.TodayCount)
	assert.Equal(t, 2, resp.ActiveCount)
	assert.Equal(t, 3, resp.CompletedThisWeek)
	assert.Len(t, resp.TodayDeliveries, resp.TodayCount)
	assert.Len(t, resp.ActiveDeliveries, resp.ActiveCount)

	assert.Equal(t, 2, resp.PendingExpenseCount)
	assert.True(t, resp.PendingExpenseAmount.Equal(decimal.RequireFromString("150.5")))
	assert.Len(t, resp.OtherExpenses, 1)
}

func TestGetDashboard_EmptyListsAreNotNil(t *testing.T) {
	svc := NewDriverDashboardService(
		fakeUsers{users: map[string]user.User{"d-9": {ID: "d-9", Role: user.RoleDriver}}},
		fakeOrders{},
		fakeExpenses{},
		wib,
	)

	resp, err := svc.GetDashboard(context.Background(), user.Identity{UserID: "d-9", Role: user.RoleDriver})
	require.NoError(t, err)
	assert.NotNil(t, resp.TodayDeliveries)
	assert.NotNil(t, resp.ActiveDeliveries)
	assert.NotNil(t, resp.PendingExpenses)
	assert.NotNil(t, resp.OtherExpenses)
	assert.True(t, resp.PendingExpenseAmount.IsZero())
}

func TestGetDashboard_Guards(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.GetDashboard(ctx, user.Identity{})
	assert.Error(t, err)

	_, err = svc.GetDashboard(ctx, user.Identity{UserID: "admin-1", Role: user.RoleAdmin})
	assert.ErrorIs(t, err, user.ErrAccessDenied)

	_, err = svc.GetDashboard(ctx, user.Identity{UserID: "ghost", Role: user.RoleDriver})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
