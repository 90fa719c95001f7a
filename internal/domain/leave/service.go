package leave

import (
	"context"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
)

type LeaveService interface {
	RequestLeave(ctx context.Context, actor user.Identity, req CreateLeaveRequest) (LeaveRequestResponse, error)
	UpdateLeaveStatus(ctx context.Context, actor user.Identity, requestID string, req UpdateLeaveStatusRequest) (LeaveRequestResponse, error)
	GetPendingWithDetails(ctx context.Context, actor user.Identity) ([]PendingLeaveResponse, error)
	Stats(ctx context.Context, actor user.Identity) (StatsResponse, error)
	ListMine(ctx context.Context, actor user.Identity, filter LeaveFilter) (ListLeaveResponse, error)
	ListAll(ctx context.Context, actor user.Identity, filter LeaveFilter) (ListLeaveResponse, error)
	Get(ctx context.Context, actor user.Identity, requestID string) (LeaveRequestResponse, error)
}
