package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const salaryRecordColumns = `
	s.id, s.driver_id, s.period_month, s.period_year, s.period, s.delivery_count,
	s.base_amount, s.delivery_pay, s.total_amount, s.status, s.paid_at, s.paid_by,
	s.created_at, s.updated_at`

type salaryRecordRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRecordRepository(db *database.DB) payroll.SalaryRecordRepository {
	return &salaryRecordRepositoryImpl{db: db}
}

func salaryRecordDest(rec *payroll.SalaryRecord) []any {
	return []any{
		&rec.ID, &rec.DriverID, &rec.PeriodMonth, &rec.PeriodYear, &rec.Period, &rec.DeliveryCount,
		&rec.BaseAmount, &rec.DeliveryPay, &rec.TotalAmount, &rec.Status, &rec.PaidAt, &rec.PaidBy,
		&rec.CreatedAt, &rec.UpdatedAt,
	}
}

// UpsertDraft implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepositoryImpl) UpsertDraft(ctx context.Context, rec payroll.SalaryRecord) (payroll.SalaryRecord, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_records AS s (
			driver_id, period_month, period_year, period, delivery_count,
			base_amount, delivery_pay, total_amount, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'draft')
		ON CONFLICT (driver_id, period_month, period_year, period) DO UPDATE
		SET delivery_count = EXCLUDED.delivery_count,
			base_amount = EXCLUDED.base_amount,
			delivery_pay = EXCLUDED.delivery_pay,
			total_amount = EXCLUDED.total_amount,
			updated_at = NOW()
		WHERE s.status = 'draft'
		RETURNING ` + salaryRecordColumns

	var saved payroll.SalaryRecord
	err := q.QueryRow(ctx, query,
		rec.DriverID, rec.PeriodMonth, rec.PeriodYear, string(rec.Period), rec.DeliveryCount,
		rec.BaseAmount, rec.DeliveryPay, rec.TotalAmount,
	).Scan(salaryRecordDest(&saved)...)
	if err != nil {
		// The conflict WHERE filtered the row out: a paid record already exists.
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryRecord{}, false, nil
		}
		return payroll.SalaryRecord{}, false, fmt.Errorf("failed to upsert salary record: %w", err)
	}
	return saved, true, nil
}

// GetByID implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	var rec payroll.SalaryRecord
	dest := append(salaryRecordDest(&rec), &rec.DriverName)
	err := q.QueryRow(ctx, `
		SELECT `+salaryRecordColumns+`, u.name
		FROM salary_records s
		LEFT JOIN users u ON u.id = s.driver_id
		WHERE s.id = $1
	`, id).Scan(dest...)
	if err != nil {
		if isNotFound(err) {
			return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
		}
		return payroll.SalaryRecord{}, fmt.Errorf("failed to get salary record: %w", err)
	}
	return rec, nil
}

// List implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepositoryImpl) List(ctx context.Context, filter payroll.SalaryFilter) ([]payroll.SalaryRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []any{}
	argIndex := 1

	add := func(cond string, v any) {
		whereClause += fmt.Sprintf(" AND "+cond, argIndex)
		args = append(args, v)
		argIndex++
	}
	if filter.Month != nil {
		add("s.period_month = $%d", *filter.Month)
	}
	if filter.Year != nil {
		add("s.period_year = $%d", *filter.Year)
	}
	if filter.Period != nil {
		add("s.period = $%d", *filter.Period)
	}
	if filter.Status != nil {
		add("s.status = $%d", *filter.Status)
	}
	if filter.DriverID != nil {
		add("s.driver_id = $%d", *filter.DriverID)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM salary_records s `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, u.name
		FROM salary_records s
		LEFT JOIN users u ON u.id = s.driver_id
		%s
		ORDER BY s.period_year DESC, s.period_month DESC, u.name
		LIMIT $%d OFFSET $%d
	`, salaryRecordColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	records := []payroll.SalaryRecord{}
	for rows.Next() {
		var rec payroll.SalaryRecord
		if err := rows.Scan(append(salaryRecordDest(&rec), &rec.DriverName)...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// MarkPaid implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepositoryImpl) MarkPaid(ctx context.Context, ids []string, paidBy string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE salary_records
		SET status = 'paid', paid_at = NOW(), paid_by = $1, updated_at = NOW()
		WHERE id = ANY($2::uuid[]) AND status = 'draft'
	`, paidBy, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to mark salary records paid: %w", err)
	}
	return tag.RowsAffected(), nil
}
