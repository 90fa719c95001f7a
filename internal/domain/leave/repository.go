package leave

import "context"

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, int64, error)
	// ListPending returns every pending request joined with its owner.
	ListPending(ctx context.Context) ([]LeaveRequest, error)
	// ListApprovedByUsers returns approved requests owned by any of userIDs.
	ListApprovedByUsers(ctx context.Context, userIDs []string) ([]LeaveRequest, error)
	UpdateStatus(ctx context.Context, id string, status Status, reviewedBy string) (LeaveRequest, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	// CountStartingBetween counts requests whose start date lies in [from, to).
	// Both bounds are calendar dates formatted as 2006-01-02.
	CountStartingBetween(ctx context.Context, from, to string) (int64, error)
}
