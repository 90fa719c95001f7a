package invitation

import (
	"context"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
)

// InvitationService defines the interface for invitation business logic
type InvitationService interface {
	Create(ctx context.Context, actor user.Identity, req CreateInvitationRequest) (InvitationResponse, error)
	List(ctx context.Context, actor user.Identity, claimed *bool) ([]InvitationResponse, error)

	// Claim binds the caller's account to a pending invitation for their
	// email. Calling it again after a successful claim is a no-op.
	Claim(ctx context.Context, actor user.Identity) (ClaimResponse, error)
}
