package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const expenseColumns = `
	e.id, e.submitted_by, e.amount, e.description, e.receipt_ref, e.status,
	e.reviewed_by, e.reviewed_at, e.created_at, e.updated_at, u.name`

const expenseFrom = `
	FROM expenses e
	LEFT JOIN users u ON u.id = e.submitted_by`

type expenseRepositoryImpl struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepositoryImpl{db: db}
}

func expenseDest(e *expense.Expense) []any {
	return []any{
		&e.ID, &e.SubmittedBy, &e.Amount, &e.Description, &e.ReceiptRef, &e.Status,
		&e.ReviewedBy, &e.ReviewedAt, &e.CreatedAt, &e.UpdatedAt, &e.SubmitterName,
	}
}

func scanExpenses(rows pgx.Rows) ([]expense.Expense, error) {
	defer rows.Close()

	expenses := []expense.Expense{}
	for rows.Next() {
		var e expense.Expense
		if err := rows.Scan(expenseDest(&e)...); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *expenseRepositoryImpl) Create(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO expenses (submitted_by, amount, description, receipt_ref, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, e.SubmittedBy, e.Amount, e.Description, e.ReceiptRef, string(e.Status)).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("failed to create expense: %w", err)
	}
	return e, nil
}

func (r *expenseRepositoryImpl) GetByID(ctx context.Context, id string) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	var e expense.Expense
	err := q.QueryRow(ctx, `SELECT `+expenseColumns+expenseFrom+` WHERE e.id = $1`, id).Scan(expenseDest(&e)...)
	if err != nil {
		if isNotFound(err) {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

func (r *expenseRepositoryImpl) ListBySubmitter(ctx context.Context, userID string) ([]expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+expenseColumns+expenseFrom+`
		WHERE e.submitted_by = $1
		ORDER BY e.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return scanExpenses(rows)
}

func (r *expenseRepositoryImpl) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.Expense, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []any{}
	argIndex := 1

	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND e.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM expenses e `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY e.created_at DESC LIMIT $%d OFFSET $%d`,
		expenseColumns, expenseFrom, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	expenses, err := scanExpenses(rows)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

func (r *expenseRepositoryImpl) UpdateStatus(ctx context.Context, id string, status expense.Status, reviewedBy string) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE expenses
		SET status = $1, reviewed_by = $2, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $3
	`, string(status), reviewedBy, id)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("failed to update expense status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return expense.Expense{}, expense.ErrExpenseNotFound
	}
	return r.GetByID(ctx, id)
}
