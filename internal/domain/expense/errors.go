package expense

import "errors"

var (
	ErrExpenseNotFound     = errors.New("Expense not found")
	ErrInvalidReviewStatus = errors.New("status must be approved or rejected")
)
