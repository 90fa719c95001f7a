package expense

import (
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SubmitExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ReceiptRef  *string         `json:"receipt_ref,omitempty"`
}

func (r *SubmitExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsPositive(r.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be greater than zero",
		})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}
	if len(r.Description) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateExpenseStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateExpenseStatusRequest) Validate() error {
	s := Status(r.Status)
	if s != StatusApproved && s != StatusRejected {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: ErrInvalidReviewStatus.Error(),
		}}
	}
	return nil
}

type ExpenseFilter struct {
	Status *string `json:"status,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *ExpenseFilter) Validate() error {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		return validator.ValidationErrors{{
			Field:   "limit",
			Message: "limit must not exceed 100",
		}}
	}
	if f.Status != nil && !Status(*f.Status).IsValid() {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected",
		}}
	}
	return nil
}

func (f *ExpenseFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type ExpenseResponse struct {
	ID            string          `json:"id"`
	SubmittedBy   string          `json:"submitted_by"`
	SubmitterName *string         `json:"submitter_name,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	ReceiptRef    *string         `json:"receipt_ref,omitempty"`
	Status        string          `json:"status"`
	ReviewedBy    *string         `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time      `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewExpenseResponse(e Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		SubmittedBy:   e.SubmittedBy,
		SubmitterName: e.SubmitterName,
		Amount:        e.Amount,
		Description:   e.Description,
		ReceiptRef:    e.ReceiptRef,
		Status:        string(e.Status),
		ReviewedBy:    e.ReviewedBy,
		ReviewedAt:    e.ReviewedAt,
		CreatedAt:     e.CreatedAt,
	}
}

type ListExpenseResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Expenses   []ExpenseResponse `json:"expenses"`
}
