package driver_dashboard

import (
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/delivery"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// DashboardResponse is the combined response for the driver dashboard
type DashboardResponse struct {
	Driver      user.UserResponse `json:"driver"`
	GeneratedAt time.Time         `json:"generated_at"`
	WeekStart   time.Time         `json:"week_start"`

	// Top cards
	TodayCount           int             `json:"today_count"`
	ActiveCount          int             `json:"active_count"`
	CompletedThisWeek    int             `json:"completed_this_week"`
	PendingExpenseCount  int             `json:"pending_expense_count"`
	PendingExpenseAmount decimal.Decimal `json:"pending_expense_amount"`

	TodayDeliveries  []delivery.DeliveryOrderResponse `json:"today_deliveries"`
	ActiveDeliveries []delivery.DeliveryOrderResponse `json:"active_deliveries"`
	PendingExpenses  []expense.ExpenseResponse        `json:"pending_expenses"`
	OtherExpenses    []expense.ExpenseResponse        `json:"other_expenses"`
}

func NewDashboardResponse(driver user.User, snap Snapshot) DashboardResponse {
	return DashboardResponse{
		Driver:               user.NewUserResponse(driver),
		GeneratedAt:          snap.GeneratedAt,
		WeekStart:            snap.WeekStart,
		TodayCount:           len(snap.TodayDeliveries),
		ActiveCount:          len(snap.ActiveDeliveries),
		CompletedThisWeek:    snap.CompletedThisWeek,
		PendingExpenseCount:  len(snap.PendingExpenses),
		PendingExpenseAmount: snap.PendingExpenseAmount,
		TodayDeliveries:      mapOrders(snap.TodayDeliveries),
		ActiveDeliveries:     mapOrders(snap.ActiveDeliveries),
		PendingExpenses:      mapExpenses(snap.PendingExpenses),
		OtherExpenses:        mapExpenses(snap.OtherExpenses),
	}
}

func mapOrders(orders []delivery.DeliveryOrder) []delivery.DeliveryOrderResponse {
	out := make([]delivery.DeliveryOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, delivery.NewDeliveryOrderResponse(o))
	}
	return out
}

func mapExpenses(expenses []expense.Expense) []expense.ExpenseResponse {
	out := make([]expense.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, expense.NewExpenseResponse(e))
	}
	return out
}
