package payroll

import "context"

type SalaryRecordRepository interface {
	// UpsertDraft inserts the record or refreshes an existing draft for the
	// same driver and period. It reports false when a paid record blocked the write.
	UpsertDraft(ctx context.Context, rec SalaryRecord) (SalaryRecord, bool, error)
	GetByID(ctx context.Context, id string) (SalaryRecord, error)
	List(ctx context.Context, filter SalaryFilter) ([]SalaryRecord, int64, error)
	MarkPaid(ctx context.Context, ids []string, paidBy string) (int64, error)
}
