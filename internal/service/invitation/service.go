package invitation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/invitation"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
)

// errLostClaim rolls the claim transaction back when another request
// claimed the invitation first.
var errLostClaim = errors.New("invitation claimed concurrently")

type InvitationServiceImpl struct {
	tx          database.Transactor
	invitations invitation.InvitationRepository
	users       user.UserRepository
}

func NewInvitationService(tx database.Transactor, invitations invitation.InvitationRepository, users user.UserRepository) *InvitationServiceImpl {
	return &InvitationServiceImpl{
		tx:          tx,
		invitations: invitations,
		users:       users,
	}
}

// Create implements invitation.InvitationService.
func (s *InvitationServiceImpl) Create(ctx context.Context, actor user.Identity, req invitation.CreateInvitationRequest) (invitation.InvitationResponse, error) {
	if !user.HasPermission(actor.Role, user.PermissionInvitationManage) {
		return invitation.InvitationResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return invitation.InvitationResponse{}, err
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	switch {
	case err == nil && existing.Role != user.RoleMember:
		return invitation.InvitationResponse{}, invitation.ErrEmailAlreadyUser
	case err != nil && !errors.Is(err, user.ErrUserNotFound):
		return invitation.InvitationResponse{}, fmt.Errorf("failed to check existing user: %w", err)
	}

	pending, err := s.invitations.ExistsUnclaimedByEmail(ctx, req.Email)
	if err != nil {
		return invitation.InvitationResponse{}, fmt.Errorf("failed to check pending invitation: %w", err)
	}
	if pending {
		return invitation.InvitationResponse{}, invitation.ErrEmailAlreadyInvited
	}

	created, err := s.invitations.Create(ctx, req.ToInvitation(actor.UserID))
	if err != nil {
		return invitation.InvitationResponse{}, fmt.Errorf("failed to create invitation: %w", err)
	}

	slog.Info("Created employee invitation", "invitation_id", created.ID, "role", created.Role)
	return invitation.NewInvitationResponse(created), nil
}

// List implements invitation.InvitationService.
func (s *InvitationServiceImpl) List(ctx context.Context, actor user.Identity, claimed *bool) ([]invitation.InvitationResponse, error) {
	if !user.HasPermission(actor.Role, user.PermissionInvitationManage) {
		return nil, user.ErrInsufficientPermissions
	}

	invitations, err := s.invitations.List(ctx, claimed)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	responses := make([]invitation.InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		responses = append(responses, invitation.NewInvitationResponse(inv))
	}
	return responses, nil
}

// Claim implements invitation.InvitationService.
func (s *InvitationServiceImpl) Claim(ctx context.Context, actor user.Identity) (invitation.ClaimResponse, error) {
	if !actor.IsAuthenticated() {
		return invitation.ClaimResponse{}, auth.ErrUnauthorized
	}

	var resp invitation.ClaimResponse
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		u, err := s.users.GetByID(ctx, actor.UserID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		inv, err := s.invitations.GetUnclaimedByEmail(ctx, u.Email)
		if errors.Is(err, invitation.ErrInvitationNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get invitation: %w", err)
		}

		inv.ApplyTo(&u)
		if err := s.users.UpdateProfile(ctx, u); err != nil {
			return fmt.Errorf("failed to apply invitation profile: %w", err)
		}

		ok, err := s.invitations.MarkClaimed(ctx, inv.ID, u.ID)
		if err != nil {
			return fmt.Errorf("failed to mark invitation claimed: %w", err)
		}
		if !ok {
			return errLostClaim
		}

		role := string(u.Role)
		resp = invitation.ClaimResponse{Claimed: true, InvitationID: &inv.ID, Role: &role}
		return nil
	})
	if errors.Is(err, errLostClaim) {
		return invitation.ClaimResponse{Claimed: false}, nil
	}
	if err != nil {
		return invitation.ClaimResponse{}, err
	}

	if resp.Claimed {
		slog.Info("Claimed employee invitation", "invitation_id", *resp.InvitationID, "user_id", actor.UserID)
	}
	return resp, nil
}

var _ invitation.InvitationService = (*InvitationServiceImpl)(nil)
