package invitation

import "context"

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	Create(ctx context.Context, inv Invitation) (Invitation, error)

	// GetUnclaimedByEmail returns the oldest unclaimed invitation whose email
	// equals email exactly.
	GetUnclaimedByEmail(ctx context.Context, email string) (Invitation, error)

	ExistsUnclaimedByEmail(ctx context.Context, email string) (bool, error)

	// MarkClaimed flips the claimed flag. It reports false when the
	// invitation was already claimed.
	MarkClaimed(ctx context.Context, id, userID string) (bool, error)

	List(ctx context.Context, claimed *bool) ([]Invitation, error)
}
