package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)

	from, to := Window(2, 2026, PeriodFull, loc)
	assert.True(t, from.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, loc)))
	assert.True(t, to.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, loc).Add(-time.Nanosecond)))

	from, to = Window(2, 2026, PeriodFirstHalf, loc)
	assert.True(t, from.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, loc)))
	assert.Equal(t, 15, to.Day())

	from, to = Window(2, 2026, PeriodSecondHalf, loc)
	assert.Equal(t, 16, from.Day())
	assert.Equal(t, 28, to.Day())
	assert.Equal(t, time.February, to.Month())
}

func TestCompute(t *testing.T) {
	rate := decimal.NewFromInt(50000)
	salary := decimal.NewFromInt(3000001)

	full := Compute("d-1", &salary, 4, 5, 2026, PeriodFull, rate)
	assert.True(t, full.BaseAmount.Equal(salary))
	assert.True(t, full.DeliveryPay.Equal(decimal.NewFromInt(200000)))
	assert.True(t, full.TotalAmount.Equal(decimal.NewFromInt(3200001)))
	assert.Equal(t, RecordStatusDraft, full.Status)

	half := Compute("d-1", &salary, 1, 5, 2026, PeriodSecondHalf, rate)
	assert.True(t, half.BaseAmount.Equal(decimal.RequireFromString("1500000.5")))
	assert.True(t, half.TotalAmount.Equal(decimal.RequireFromString("1550000.5")))

	noSalary := Compute("d-2", nil, 0, 5, 2026, PeriodFull, rate)
	assert.True(t, noSalary.TotalAmount.IsZero())
}
