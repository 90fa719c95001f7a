package leave

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestInclusiveDays(t *testing.T) {
	assert.Equal(t, 1, InclusiveDays(day(5), day(5)))
	assert.Equal(t, 3, InclusiveDays(day(5), day(7)))
	assert.Equal(t, 2, InclusiveDays(day(5), day(5).Add(3*time.Hour)))
}

func TestIsSickType(t *testing.T) {
	assert.True(t, IsSickType("Sick"))
	assert.True(t, IsSickType("sick leave"))
	assert.False(t, IsSickType("annual"))
}

func TestComputeBalance(t *testing.T) {
	sick := 10
	owner := user.User{ID: "u-1", InitialSickLeave: &sick}

	pending := LeaveRequest{ID: "r-new", UserID: "u-1", Type: "sick", Status: StatusPending, StartDate: day(20), EndDate: day(21)}
	history := []LeaveRequest{
		{ID: "r-1", UserID: "u-1", Type: "sick", Status: StatusApproved, StartDate: day(2), EndDate: day(4)},
		{ID: "r-2", UserID: "u-1", Type: "sick", Status: StatusRejected, StartDate: day(8), EndDate: day(9)},
		{ID: "r-3", UserID: "u-1", Type: "annual", Status: StatusApproved, StartDate: day(10), EndDate: day(14)},
		{ID: "r-4", UserID: "u-2", Type: "sick", Status: StatusApproved, StartDate: day(1), EndDate: day(5)},
		// an approved copy of the request itself never counts
		{ID: "r-new", UserID: "u-1", Type: "sick", Status: StatusApproved, StartDate: day(20), EndDate: day(21)},
	}

	b := ComputeBalance(owner, pending, history)
	assert.Equal(t, Balance{Entitlement: 10, Used: 3, Remaining: 7}, b)

	annual := ComputeBalance(user.User{ID: "u-1"}, LeaveRequest{ID: "r-x", UserID: "u-1", Type: "annual"}, history)
	assert.Equal(t, user.DefaultAnnualLeave, annual.Entitlement)
	assert.Equal(t, 5, annual.Used)
}
