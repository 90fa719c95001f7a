package leave

import "github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"

// Balance is a point-in-time projection of a user's allowance for one leave type.
type Balance struct {
	Entitlement int
	Used        int
	Remaining   int
}

// ComputeBalance projects the allowance left for req. Only approved requests
// of the same user with exactly the same type string count as used, and req
// itself is never counted.
func ComputeBalance(owner user.User, req LeaveRequest, history []LeaveRequest) Balance {
	entitlement := owner.AnnualLeaveEntitlement()
	if IsSickType(req.Type) {
		entitlement = owner.SickLeaveEntitlement()
	}

	used := 0
	for _, h := range history {
		if h.ID == req.ID || h.UserID != req.UserID {
			continue
		}
		if h.Status != StatusApproved || h.Type != req.Type {
			continue
		}
		used += h.Days()
	}

	return Balance{
		Entitlement: entitlement,
		Used:        used,
		Remaining:   entitlement - used,
	}
}
