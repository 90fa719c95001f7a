package leave

import (
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
	Type      string `json:"type"`

	// Parsed by Validate
	start time.Time
	end   time.Time
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	// Start date
	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	// End date
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if ok && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	// Reason
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	// Type
	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	}
	if len(r.Type) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.start, r.end = start, end
	return nil
}

// Dates returns the range parsed by a successful Validate.
func (r *CreateLeaveRequest) Dates() (time.Time, time.Time) {
	return r.start, r.end
}

type UpdateLeaveStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateLeaveStatusRequest) Validate() error {
	if !Status(r.Status).IsReviewOutcome() {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: ErrInvalidReviewStatus.Error(),
		}}
	}
	return nil
}

type LeaveFilter struct {
	UserID *string `json:"-"`
	Status *string `json:"status,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *LeaveFilter) Validate() error {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		return validator.ValidationErrors{{
			Field:   "limit",
			Message: "limit must not exceed 100",
		}}
	}
	if f.Status != nil && !Status(*f.Status).IsValid() {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected",
		}}
	}
	return nil
}

func (f *LeaveFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type LeaveRequestResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	UserName   *string    `json:"user_name,omitempty"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	Days       int        `json:"days"`
	Reason     string     `json:"reason"`
	Type       string     `json:"type"`
	Status     string     `json:"status"`
	ReviewedBy *string    `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		UserName:   r.UserName,
		StartDate:  r.StartDate.Format("2006-01-02"),
		EndDate:    r.EndDate.Format("2006-01-02"),
		Days:       r.Days(),
		Reason:     r.Reason,
		Type:       r.Type,
		Status:     string(r.Status),
		ReviewedBy: r.ReviewedBy,
		ReviewedAt: r.ReviewedAt,
		CreatedAt:  r.CreatedAt,
	}
}

// PendingLeaveResponse is a pending request with the owner's balance for its type.
type PendingLeaveResponse struct {
	LeaveRequestResponse
	UserEmail   *string `json:"user_email,omitempty"`
	Entitlement int     `json:"entitlement"`
	Used        int     `json:"used"`
	Balance     int     `json:"balance"`
}

type ListLeaveResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Requests   []LeaveRequestResponse `json:"requests"`
}

type StatsResponse struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	ThisMonth int64 `json:"this_month"`
}
