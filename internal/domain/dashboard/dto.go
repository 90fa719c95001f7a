package dashboard

import "github.com/shopspring/decimal"

// OverviewResponse is the admin/hr landing page summary
type OverviewResponse struct {
	Month                string           `json:"month"` // Format: "YYYY-MM"
	OrdersByStatus       map[string]int64 `json:"orders_by_status"`
	TotalOrders          int64            `json:"total_orders"`
	PendingLeave         int64            `json:"pending_leave"`
	PendingExpenses      int64            `json:"pending_expenses"`
	PendingExpenseAmount decimal.Decimal  `json:"pending_expense_amount"`
	WeighTickets         int64            `json:"weigh_tickets"`
	TotalTonnage         decimal.Decimal  `json:"total_tonnage"`
}
