package leave

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	requests leave.LeaveRequestRepository
	users    user.UserRepository
	events   sse.Publisher
	location *time.Location
	now      func() time.Time
}

func NewLeaveService(requests leave.LeaveRequestRepository, users user.UserRepository, events sse.Publisher, location *time.Location) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		requests: requests,
		users:    users,
		events:   events,
		location: location,
		now:      time.Now,
	}
}

// RequestLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) RequestLeave(ctx context.Context, actor user.Identity, req leave.CreateLeaveRequest) (leave.LeaveRequestResponse, error) {
	if !actor.IsAuthenticated() {
		return leave.LeaveRequestResponse{}, auth.ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	start, end := req.Dates()
	created, err := l.requests.Create(ctx, leave.LeaveRequest{
		UserID:    actor.UserID,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		Type:      req.Type,
		Status:    leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.NewLeaveRequestResponse(created), nil
}

// UpdateLeaveStatus implements leave.LeaveService. Reviewed requests may be
// reviewed again; the latest decision wins.
func (l *LeaveServiceImpl) UpdateLeaveStatus(ctx context.Context, actor user.Identity, requestID string, req leave.UpdateLeaveStatusRequest) (leave.LeaveRequestResponse, error) {
	if !actor.CanReview() {
		return leave.LeaveRequestResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !validator.IsValidUUID(requestID) {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}

	updated, err := l.requests.UpdateStatus(ctx, requestID, leave.Status(req.Status), actor.UserID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	resp := leave.NewLeaveRequestResponse(updated)
	l.events.Publish(updated.UserID, sse.Event{Event: sse.EventLeaveUpdated, Data: resp})
	return resp, nil
}

// GetPendingWithDetails implements leave.LeaveService.
func (l *LeaveServiceImpl) GetPendingWithDetails(ctx context.Context, actor user.Identity) ([]leave.PendingLeaveResponse, error) {
	if !actor.CanReview() {
		return nil, user.ErrInsufficientPermissions
	}

	pending, err := l.requests.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	if len(pending) == 0 {
		return []leave.PendingLeaveResponse{}, nil
	}

	seen := make(map[string]struct{}, len(pending))
	var userIDs []string
	for _, p := range pending {
		if _, ok := seen[p.UserID]; !ok {
			seen[p.UserID] = struct{}{}
			userIDs = append(userIDs, p.UserID)
		}
	}

	owners, err := l.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave request owners: %w", err)
	}
	ownerByID := make(map[string]user.User, len(owners))
	for _, o := range owners {
		ownerByID[o.ID] = o
	}

	history, err := l.requests.ListApprovedByUsers(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave requests: %w", err)
	}

	responses := make([]leave.PendingLeaveResponse, 0, len(pending))
	for _, p := range pending {
		// A missing owner falls back to default entitlements
		owner := ownerByID[p.UserID]
		balance := leave.ComputeBalance(owner, p, history)

		resp := leave.PendingLeaveResponse{
			LeaveRequestResponse: leave.NewLeaveRequestResponse(p),
			UserEmail:            p.UserEmail,
			Entitlement:          balance.Entitlement,
			Used:                 balance.Used,
			Balance:              balance.Remaining,
		}
		if resp.UserEmail == nil && owner.Email != "" {
			resp.UserEmail = &owner.Email
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Stats implements leave.LeaveService.
func (l *LeaveServiceImpl) Stats(ctx context.Context, actor user.Identity) (leave.StatsResponse, error) {
	if !actor.CanReview() {
		return leave.StatsResponse{}, user.ErrInsufficientPermissions
	}

	counts, err := l.requests.CountByStatus(ctx)
	if err != nil {
		return leave.StatsResponse{}, fmt.Errorf("failed to count leave requests: %w", err)
	}

	now := l.now().In(l.location)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, l.location)
	thisMonth, err := l.requests.CountStartingBetween(ctx,
		monthStart.Format("2006-01-02"),
		monthStart.AddDate(0, 1, 0).Format("2006-01-02"),
	)
	if err != nil {
		return leave.StatsResponse{}, fmt.Errorf("failed to count leave requests this month: %w", err)
	}

	return leave.StatsResponse{
		Total:     counts[leave.StatusPending] + counts[leave.StatusApproved] + counts[leave.StatusRejected],
		Pending:   counts[leave.StatusPending],
		Approved:  counts[leave.StatusApproved],
		Rejected:  counts[leave.StatusRejected],
		ThisMonth: thisMonth,
	}, nil
}

func (l *LeaveServiceImpl) list(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	requests, total, err := l.requests.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}

	return leave.ListLeaveResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   responses,
	}, nil
}

// ListMine implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMine(ctx context.Context, actor user.Identity, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if !actor.IsAuthenticated() {
		return leave.ListLeaveResponse{}, auth.ErrUnauthorized
	}
	filter.UserID = &actor.UserID
	return l.list(ctx, filter)
}

// ListAll implements leave.LeaveService.
func (l *LeaveServiceImpl) ListAll(ctx context.Context, actor user.Identity, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if !actor.CanReview() {
		return leave.ListLeaveResponse{}, user.ErrInsufficientPermissions
	}
	return l.list(ctx, filter)
}

// Get implements leave.LeaveService.
func (l *LeaveServiceImpl) Get(ctx context.Context, actor user.Identity, requestID string) (leave.LeaveRequestResponse, error) {
	if !actor.IsAuthenticated() {
		return leave.LeaveRequestResponse{}, auth.ErrUnauthorized
	}
	if !validator.IsValidUUID(requestID) {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}

	request, err := l.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.UserID != actor.UserID && !actor.CanReview() {
		return leave.LeaveRequestResponse{}, user.ErrAccessDenied
	}
	return leave.NewLeaveRequestResponse(request), nil
}

var _ leave.LeaveService = (*LeaveServiceImpl)(nil)
