package driver_dashboard

import (
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/delivery"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/shopspring/decimal"
)

// Snapshot is a driver's view of the day, derived entirely from their orders
// and expenses at a given instant.
type Snapshot struct {
	GeneratedAt time.Time
	DayStart    time.Time
	DayEnd      time.Time
	WeekStart   time.Time

	TodayDeliveries   []delivery.DeliveryOrder
	ActiveDeliveries  []delivery.DeliveryOrder
	CompletedThisWeek int

	PendingExpenses      []expense.Expense
	OtherExpenses        []expense.Expense
	PendingExpenseAmount decimal.Decimal
}

// DayBounds returns the first and last instant of now's calendar day in now's location.
func DayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// WeekStart returns the most recent Sunday 00:00 at or before now.
func WeekStart(now time.Time) time.Time {
	dayStart, _ := DayBounds(now)
	return dayStart.AddDate(0, 0, -int(now.Weekday()))
}

// BuildSnapshot computes the dashboard. now must already be in the
// location whose calendar days should be used.
func BuildSnapshot(now time.Time, orders []delivery.DeliveryOrder, expenses []expense.Expense) Snapshot {
	dayStart, dayEnd := DayBounds(now)
	weekStart := WeekStart(now)

	snap := Snapshot{
		GeneratedAt:      now,
		DayStart:         dayStart,
		DayEnd:           dayEnd,
		WeekStart:        weekStart,
		TodayDeliveries:  []delivery.DeliveryOrder{},
		ActiveDeliveries: []delivery.DeliveryOrder{},
	}

	for _, o := range orders {
		active := o.Status.IsActive()
		deliveredToday := o.DeliveryDate != nil &&
			!o.DeliveryDate.Before(dayStart) && !o.DeliveryDate.After(dayEnd)

		if active {
			snap.ActiveDeliveries = append(snap.ActiveDeliveries, o)
		}
		if active || deliveredToday {
			snap.TodayDeliveries = append(snap.TodayDeliveries, o)
		}
		if o.DeliveredWithin(weekStart, dayEnd) {
			snap.CompletedThisWeek++
		}
	}

	snap.PendingExpenses, snap.OtherExpenses, snap.PendingExpenseAmount = expense.SplitPending(expenses)
	if snap.PendingExpenses == nil {
		snap.PendingExpenses = []expense.Expense{}
	}
	if snap.OtherExpenses == nil {
		snap.OtherExpenses = []expense.Expense{}
	}

	return snap
}
