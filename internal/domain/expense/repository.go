package expense

import "context"

type ExpenseRepository interface {
	Create(ctx context.Context, e Expense) (Expense, error)
	GetByID(ctx context.Context, id string) (Expense, error)
	ListBySubmitter(ctx context.Context, userID string) ([]Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]Expense, int64, error)
	UpdateStatus(ctx context.Context, id string, status Status, reviewedBy string) (Expense, error)
}
