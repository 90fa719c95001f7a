package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/delivery"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUsers struct {
	user.UserRepository
	drivers []user.User
}

func (f fakeUsers) ListByRole(_ context.Context, role user.Role) ([]user.User, error) {
	if role != user.RoleDriver {
		return nil, nil
	}
	return f.drivers, nil
}

type fakeOrders struct {
	delivery.DeliveryOrderRepository
	orders []delivery.DeliveryOrder
}

func (f fakeOrders) CountCompletedByDriver(_ context.Context, driverID string, from, to time.Time) (int, error) {
	n := 0
	for _, o := range f.orders {
		if o.IsAssignedTo(driverID) && o.DeliveredWithin(from, to) {
			n++
		}
	}
	return n, nil
}

type fakeRecords struct {
	byKey map[string]payroll.SalaryRecord
	paid  []string
}

func key(r payroll.SalaryRecord) string {
	return fmt.Sprintf("%s/%d/%d/%s", r.DriverID, r.PeriodYear, r.PeriodMonth, r.Period)
}

func (f *fakeRecords) UpsertDraft(_ context.Context, rec payroll.SalaryRecord) (payroll.SalaryRecord, bool, error) {
	existing, ok := f.byKey[key(rec)]
	if ok && existing.Status == payroll.RecordStatusPaid {
		return payroll.SalaryRecord{}, false, nil
	}
	rec.ID = "rec-" + key(rec)
	f.byKey[key(rec)] = rec
	return rec, true, nil
}

func (f *fakeRecords) GetByID(context.Context, string) (payroll.SalaryRecord, error) {
	return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
}

func (f *fakeRecords) List(_ context.Context, filter payroll.SalaryFilter) ([]payroll.SalaryRecord, int64, error) {
	var out []payroll.SalaryRecord
	for _, r := range f.byKey {
		if filter.DriverID == nil || r.DriverID == *filter.DriverID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecords) MarkPaid(_ context.Context, ids []string, _ string) (int64, error) {
	f.paid = append(f.paid, ids...)
	return int64(len(ids)), nil
}

var admin = user.Identity{UserID: "admin-1", Role: user.RoleAdmin}

func delivered(driverID string, at time.Time, status delivery.Status) delivery.DeliveryOrder {
	return delivery.DeliveryOrder{DriverID: &driverID, Status: status, DeliveryDate: &at}
}

func newService(records *fakeRecords) *PayrollServiceImpl {
	salary := decimal.NewFromInt(3000000)
	users := fakeUsers{drivers: []user.User{
		{ID: "d-1", Name: "Andi", Role: user.RoleDriver, BaseSalary: &salary},
		{ID: "d-2", Name: "Rina", Role: user.RoleDriver},
	}}
	orders := fakeOrders{orders: []delivery.DeliveryOrder{
		delivered("d-1", time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC), delivery.StatusDelivered),
		delivered("d-1", time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC), delivery.StatusInvoiced),
		delivered("d-1", time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), delivery.StatusDelivered),
		delivered("d-1", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), delivery.StatusDelivered),
		delivered("d-2", time.Date(2026, 3, 20, 8, 0, 0, 0, time.UTC), delivery.StatusInProgress),
	}}
	return NewPayrollService(fakeTx{}, records, users, orders, decimal.NewFromInt(50000), time.UTC)
}

func TestCalculateSalaries_FullMonth(t *testing.T) {
	records := &fakeRecords{byKey: map[string]payroll.SalaryRecord{}}
	svc := newService(records)

	resp, err := svc.CalculateSalaries(context.Background(), admin, payroll.CalculateSalariesRequest{Month: 3, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.DriversProcessed)

	byDriver := map[string]payroll.SalaryRecordResponse{}
	for _, r := range resp.Records {
		byDriver[r.DriverID] = r
	}

	andi := byDriver["d-1"]
	assert.Equal(t, 3, andi.DeliveryCount)
	assert.Equal(t, "full", andi.Period)
	assert.True(t, andi.BaseAmount.Equal(decimal.NewFromInt(3000000)))
	assert.True(t, andi.DeliveryPay.Equal(decimal.NewFromInt(150000)))
	assert.True(t, andi.TotalAmount.Equal(decimal.NewFromInt(3150000)))
	require.NotNil(t, andi.DriverName)
	assert.Equal(t, "Andi", *andi.DriverName)

	// in-progress orders never count; a missing salary counts as zero
	rina := byDriver["d-2"]
	assert.Equal(t, 0, rina.DeliveryCount)
	assert.True(t, rina.TotalAmount.IsZero())
}

func TestCalculateSalaries_HalfPeriods(t *testing.T) {
	records := &fakeRecords{byKey: map[string]payroll.SalaryRecord{}}
	svc := newService(records)
	ctx := context.Background()

	first, err := svc.CalculateSalaries(ctx, admin, payroll.CalculateSalariesRequest{Month: 3, Year: 2026, Period: "first_half"})
	require.NoError(t, err)
	second, err := svc.CalculateSalaries(ctx, admin, payroll.CalculateSalariesRequest{Month: 3, Year: 2026, Period: "second_half"})
	require.NoError(t, err)

	find := func(resp payroll.CalculateSalariesResponse) payroll.SalaryRecordResponse {
		for _, r := range resp.Records {
			if r.DriverID == "d-1" {
				return r
			}
		}
		t.Fatal("missing record for d-1")
		return payroll.SalaryRecordResponse{}
	}

	assert.Equal(t, 2, find(first).DeliveryCount)
	assert.Equal(t, 1, find(second).DeliveryCount)
	assert.True(t, find(first).BaseAmount.Equal(decimal.NewFromInt(1500000)))
}

func TestCalculateSalaries_SkipsPaidRecords(t *testing.T) {
	records := &fakeRecords{byKey: map[string]payroll.SalaryRecord{
		"d-1/2026/3/full": {ID: "paid", DriverID: "d-1", PeriodYear: 2026, PeriodMonth: 3, Period: payroll.PeriodFull, Status: payroll.RecordStatusPaid},
	}}
	svc := newService(records)

	resp, err := svc.CalculateSalaries(context.Background(), admin, payroll.CalculateSalariesRequest{Month: 3, Year: 2026, Period: "full"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.DriversProcessed)
	assert.Equal(t, payroll.RecordStatusPaid, records.byKey["d-1/2026/3/full"].Status)
}

func TestCalculateSalaries_Guards(t *testing.T) {
	svc := newService(&fakeRecords{byKey: map[string]payroll.SalaryRecord{}})
	ctx := context.Background()

	_, err := svc.CalculateSalaries(ctx, user.Identity{UserID: "d-1", Role: user.RoleDriver}, payroll.CalculateSalariesRequest{Month: 3, Year: 2026})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.CalculateSalaries(ctx, admin, payroll.CalculateSalariesRequest{Month: 13, Year: 2026})
	assert.Error(t, err)
}

func TestList_DriverSeesOwnRecords(t *testing.T) {
	records := &fakeRecords{byKey: map[string]payroll.SalaryRecord{}}
	svc := newService(records)
	ctx := context.Background()
	_, err := svc.CalculateSalaries(ctx, admin, payroll.CalculateSalariesRequest{Month: 3, Year: 2026})
	require.NoError(t, err)

	list, err := svc.List(ctx, user.Identity{UserID: "d-2", Role: user.RoleDriver}, payroll.SalaryFilter{})
	require.NoError(t, err)
	require.Len(t, list.Records, 1)
	assert.Equal(t, "d-2", list.Records[0].DriverID)

	_, err = svc.List(ctx, user.Identity{UserID: "m", Role: user.RoleMember}, payroll.SalaryFilter{})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestMarkPaid(t *testing.T) {
	records := &fakeRecords{byKey: map[string]payroll.SalaryRecord{}}
	svc := newService(records)
	id := "0190a000-0000-7000-8000-000000000001"

	resp, err := svc.MarkPaid(context.Background(), admin, payroll.MarkPaidRequest{RecordIDs: []string{id}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Updated)
	assert.Equal(t, []string{id}, records.paid)

	_, err = svc.MarkPaid(context.Background(), admin, payroll.MarkPaidRequest{RecordIDs: []string{"nope"}})
	assert.Error(t, err)
}
