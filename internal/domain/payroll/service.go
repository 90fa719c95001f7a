package payroll

import (
	"context"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
)

type PayrollService interface {
	CalculateSalaries(ctx context.Context, actor user.Identity, req CalculateSalariesRequest) (CalculateSalariesResponse, error)
	List(ctx context.Context, actor user.Identity, filter SalaryFilter) (ListSalaryRecordResponse, error)
	MarkPaid(ctx context.Context, actor user.Identity, req MarkPaidRequest) (MarkPaidResponse, error)
}
