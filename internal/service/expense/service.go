package expense

import (
	"context"
	"fmt"
	"math"
	"mime/multipart"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/file"
)

type ExpenseServiceImpl struct {
	expenses expense.ExpenseRepository
	files    file.FileService
	events   sse.Publisher
}

func NewExpenseService(expenses expense.ExpenseRepository, files file.FileService, events sse.Publisher) *ExpenseServiceImpl {
	return &ExpenseServiceImpl{
		expenses: expenses,
		files:    files,
		events:   events,
	}
}

// Submit implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Submit(ctx context.Context, actor user.Identity, req expense.SubmitExpenseRequest) (expense.ExpenseResponse, error) {
	if !actor.IsAuthenticated() {
		return expense.ExpenseResponse{}, auth.ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	created, err := s.expenses.Create(ctx, expense.Expense{
		SubmittedBy: actor.UserID,
		Amount:      req.Amount,
		Description: req.Description,
		ReceiptRef:  req.ReceiptRef,
		Status:      expense.StatusPending,
	})
	if err != nil {
		return expense.ExpenseResponse{}, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense.NewExpenseResponse(created), nil
}

// UploadReceipt implements expense.ExpenseService.
func (s *ExpenseServiceImpl) UploadReceipt(ctx context.Context, actor user.Identity, f multipart.File, header *multipart.FileHeader) (string, error) {
	if !actor.IsAuthenticated() {
		return "", auth.ErrUnauthorized
	}
	if f == nil || header == nil {
		return "", validator.ValidationErrors{{Field: "receipt", Message: "receipt file is required"}}
	}
	return s.files.UploadReceipt(ctx, actor.UserID, f, header.Filename)
}

// ListMine implements expense.ExpenseService.
func (s *ExpenseServiceImpl) ListMine(ctx context.Context, actor user.Identity) ([]expense.ExpenseResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, auth.ErrUnauthorized
	}

	expenses, err := s.expenses.ListBySubmitter(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	responses := make([]expense.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, expense.NewExpenseResponse(e))
	}
	return responses, nil
}

// ListAll implements expense.ExpenseService.
func (s *ExpenseServiceImpl) ListAll(ctx context.Context, actor user.Identity, filter expense.ExpenseFilter) (expense.ListExpenseResponse, error) {
	if !actor.CanReview() {
		return expense.ListExpenseResponse{}, user.ErrInsufficientPermissions
	}
	if err := filter.Validate(); err != nil {
		return expense.ListExpenseResponse{}, err
	}

	expenses, total, err := s.expenses.List(ctx, filter)
	if err != nil {
		return expense.ListExpenseResponse{}, fmt.Errorf("failed to list expenses: %w", err)
	}

	responses := make([]expense.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, expense.NewExpenseResponse(e))
	}

	return expense.ListExpenseResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Expenses:   responses,
	}, nil
}

// UpdateStatus implements expense.ExpenseService.
func (s *ExpenseServiceImpl) UpdateStatus(ctx context.Context, actor user.Identity, expenseID string, req expense.UpdateExpenseStatusRequest) (expense.ExpenseResponse, error) {
	if !actor.CanReview() {
		return expense.ExpenseResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}
	if !validator.IsValidUUID(expenseID) {
		return expense.ExpenseResponse{}, expense.ErrExpenseNotFound
	}

	updated, err := s.expenses.UpdateStatus(ctx, expenseID, expense.Status(req.Status), actor.UserID)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	resp := expense.NewExpenseResponse(updated)
	s.events.Publish(updated.SubmittedBy, sse.Event{Event: sse.EventExpenseUpdated, Data: resp})
	return resp, nil
}

var _ expense.ExpenseService = (*ExpenseServiceImpl)(nil)
