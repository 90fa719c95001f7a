package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/delivery"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	tx              database.Transactor
	records         payroll.SalaryRecordRepository
	users           user.UserRepository
	orders          delivery.DeliveryOrderRepository
	ratePerDelivery decimal.Decimal
	location        *time.Location
}

func NewPayrollService(
	tx database.Transactor,
	records payroll.SalaryRecordRepository,
	users user.UserRepository,
	orders delivery.DeliveryOrderRepository,
	ratePerDelivery decimal.Decimal,
	location *time.Location,
) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		tx:              tx,
		records:         records,
		users:           users,
		orders:          orders,
		ratePerDelivery: ratePerDelivery,
		location:        location,
	}
}

func canRunPayroll(actor user.Identity) bool {
	return user.HasPermission(actor.Role, user.PermissionPayrollManage)
}

// CalculateSalaries implements payroll.PayrollService. Every driver gets a
// draft record for the period; records already paid are left untouched and
// not counted as processed.
func (s *PayrollServiceImpl) CalculateSalaries(ctx context.Context, actor user.Identity, req payroll.CalculateSalariesRequest) (payroll.CalculateSalariesResponse, error) {
	if !canRunPayroll(actor) {
		return payroll.CalculateSalariesResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return payroll.CalculateSalariesResponse{}, err
	}

	period := payroll.Period(req.Period)
	from, to := payroll.Window(req.Month, req.Year, period, s.location)

	var records []payroll.SalaryRecord
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		drivers, err := s.users.ListByRole(ctx, user.RoleDriver)
		if err != nil {
			return fmt.Errorf("failed to list drivers: %w", err)
		}

		for _, d := range drivers {
			deliveries, err := s.orders.CountCompletedByDriver(ctx, d.ID, from, to)
			if err != nil {
				return fmt.Errorf("failed to count deliveries for driver %s: %w", d.ID, err)
			}

			rec := payroll.Compute(d.ID, d.BaseSalary, deliveries, req.Month, req.Year, period, s.ratePerDelivery)
			saved, applied, err := s.records.UpsertDraft(ctx, rec)
			if err != nil {
				return fmt.Errorf("failed to save salary record for driver %s: %w", d.ID, err)
			}
			if !applied {
				continue
			}
			saved.DriverName = &d.Name
			records = append(records, saved)
		}
		return nil
	})
	if err != nil {
		return payroll.CalculateSalariesResponse{}, err
	}

	slog.Info("Calculated salaries", "month", req.Month, "year", req.Year, "period", period, "drivers_processed", len(records))

	responses := make([]payroll.SalaryRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, payroll.NewSalaryRecordResponse(r))
	}
	return payroll.CalculateSalariesResponse{
		DriversProcessed: len(records),
		Records:          responses,
	}, nil
}

// List implements payroll.PayrollService. Drivers only see their own records.
func (s *PayrollServiceImpl) List(ctx context.Context, actor user.Identity, filter payroll.SalaryFilter) (payroll.ListSalaryRecordResponse, error) {
	if !canRunPayroll(actor) {
		if actor.Role != user.RoleDriver {
			return payroll.ListSalaryRecordResponse{}, user.ErrInsufficientPermissions
		}
		filter.DriverID = &actor.UserID
	}
	if err := filter.Validate(); err != nil {
		return payroll.ListSalaryRecordResponse{}, err
	}

	records, total, err := s.records.List(ctx, filter)
	if err != nil {
		return payroll.ListSalaryRecordResponse{}, fmt.Errorf("failed to list salary records: %w", err)
	}

	responses := make([]payroll.SalaryRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, payroll.NewSalaryRecordResponse(r))
	}

	return payroll.ListSalaryRecordResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Records:    responses,
	}, nil
}

// MarkPaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, actor user.Identity, req payroll.MarkPaidRequest) (payroll.MarkPaidResponse, error) {
	if !canRunPayroll(actor) {
		return payroll.MarkPaidResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return payroll.MarkPaidResponse{}, err
	}

	updated, err := s.records.MarkPaid(ctx, req.RecordIDs, actor.UserID)
	if err != nil {
		return payroll.MarkPaidResponse{}, fmt.Errorf("failed to mark salary records paid: %w", err)
	}
	return payroll.MarkPaidResponse{Updated: updated}, nil
}

var _ payroll.PayrollService = (*PayrollServiceImpl)(nil)
