package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Period string

const (
	PeriodFull       Period = "full"
	PeriodFirstHalf  Period = "first_half"
	PeriodSecondHalf Period = "second_half"
)

func (p Period) IsValid() bool {
	return p == PeriodFull || p == PeriodFirstHalf || p == PeriodSecondHalf
}

func (p Period) IsHalf() bool {
	return p == PeriodFirstHalf || p == PeriodSecondHalf
}

// halfMonthSplit is the first day of the second half of a month.
const halfMonthSplit = 16

// Window returns the inclusive time range a pay period covers in loc.
func Window(month, year int, period Period, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	split := time.Date(year, time.Month(month), halfMonthSplit, 0, 0, 0, 0, loc)
	next := first.AddDate(0, 1, 0)

	switch period {
	case PeriodFirstHalf:
		return first, split.Add(-time.Nanosecond)
	case PeriodSecondHalf:
		return split, next.Add(-time.Nanosecond)
	default:
		return first, next.Add(-time.Nanosecond)
	}
}

type RecordStatus string

const (
	RecordStatusDraft RecordStatus = "draft"
	RecordStatusPaid  RecordStatus = "paid"
)

// SalaryRecord - generated driver pay for one period
type SalaryRecord struct {
	ID            string
	DriverID      string
	PeriodMonth   int
	PeriodYear    int
	Period        Period
	DeliveryCount int
	BaseAmount    decimal.Decimal
	DeliveryPay   decimal.Decimal
	TotalAmount   decimal.Decimal
	Status        RecordStatus
	PaidAt        *time.Time
	PaidBy        *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	DriverName *string
}

// Compute fills in a draft record for one driver. A nil base salary counts as zero.
func Compute(driverID string, baseSalary *decimal.Decimal, deliveries int, month, year int, period Period, ratePerDelivery decimal.Decimal) SalaryRecord {
	base := decimal.Zero
	if baseSalary != nil {
		base = *baseSalary
	}
	if period.IsHalf() {
		base = base.Div(decimal.NewFromInt(2))
	}
	pay := ratePerDelivery.Mul(decimal.NewFromInt(int64(deliveries)))

	return SalaryRecord{
		DriverID:      driverID,
		PeriodMonth:   month,
		PeriodYear:    year,
		Period:        period,
		DeliveryCount: deliveries,
		BaseAmount:    base.Round(2),
		DeliveryPay:   pay.Round(2),
		TotalAmount:   base.Add(pay).Round(2),
		Status:        RecordStatusDraft,
	}
}
