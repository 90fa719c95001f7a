package expense

import (
	"context"
	"mime/multipart"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
)

type ExpenseService interface {
	Submit(ctx context.Context, actor user.Identity, req SubmitExpenseRequest) (ExpenseResponse, error)
	ListMine(ctx context.Context, actor user.Identity) ([]ExpenseResponse, error)
	ListAll(ctx context.Context, actor user.Identity, filter ExpenseFilter) (ListExpenseResponse, error)
	UpdateStatus(ctx context.Context, actor user.Identity, expenseID string, req UpdateExpenseStatusRequest) (ExpenseResponse, error)
	// UploadReceipt stores a receipt file and returns the reference to pass as receipt_ref.
	UploadReceipt(ctx context.Context, actor user.Identity, file multipart.File, header *multipart.FileHeader) (string, error)
}
