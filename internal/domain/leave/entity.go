package leave

import (
	"math"
	"strings"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// IsReviewOutcome reports whether s may be set by a reviewer.
func (s Status) IsReviewOutcome() bool {
	return s == StatusApproved || s == StatusRejected
}

// LeaveRequest entity
type LeaveRequest struct {
	ID        string
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	Type      string // free text, classified by IsSickType
	Status    Status

	ReviewedBy *string
	ReviewedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	UserName  *string
	UserEmail *string
}

// Days returns the inclusive length of the request in days.
func (r *LeaveRequest) Days() int {
	return InclusiveDays(r.StartDate, r.EndDate)
}

// InclusiveDays counts calendar days from start to end, both ends included.
// Partial days round up.
func InclusiveDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

// IsSickType reports whether a free-text leave type draws on the sick allowance.
func IsSickType(leaveType string) bool {
	return strings.Contains(strings.ToLower(leaveType), "sick")
}
