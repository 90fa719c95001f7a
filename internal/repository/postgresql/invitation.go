package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/invitation"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
)

const invitationColumns = `
	id, email, name, phone, role, position, hire_date, base_salary,
	initial_annual_leave, initial_sick_leave,
	claimed, claimed_by, claimed_at, invited_by, created_at, updated_at`

type invitationRepositoryImpl struct {
	db *database.DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *database.DB) invitation.InvitationRepository {
	return &invitationRepositoryImpl{db: db}
}

func invitationDest(inv *invitation.Invitation) []any {
	return []any{
		&inv.ID, &inv.Email, &inv.Name, &inv.Phone, &inv.Role, &inv.Position, &inv.HireDate, &inv.BaseSalary,
		&inv.InitialAnnualLeave, &inv.InitialSickLeave,
		&inv.Claimed, &inv.ClaimedBy, &inv.ClaimedAt, &inv.InvitedBy, &inv.CreatedAt, &inv.UpdatedAt,
	}
}

// Create inserts a new invitation record
func (r *invitationRepositoryImpl) Create(ctx context.Context, inv invitation.Invitation) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	var created invitation.Invitation
	err := q.QueryRow(ctx, `
		INSERT INTO employee_invitations (
			email, name, phone, role, position, hire_date, base_salary,
			initial_annual_leave, initial_sick_leave, invited_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+invitationColumns,
		inv.Email, inv.Name, inv.Phone, string(inv.Role), inv.Position, inv.HireDate, inv.BaseSalary,
		inv.InitialAnnualLeave, inv.InitialSickLeave, inv.InvitedBy,
	).Scan(invitationDest(&created)...)
	if err != nil {
		if isUniqueViolation(err) {
			return invitation.Invitation{}, invitation.ErrEmailAlreadyInvited
		}
		return invitation.Invitation{}, fmt.Errorf("failed to create invitation: %w", err)
	}
	return created, nil
}

// GetUnclaimedByEmail returns the oldest unclaimed invitation for an exact email
func (r *invitationRepositoryImpl) GetUnclaimedByEmail(ctx context.Context, email string) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	var inv invitation.Invitation
	err := q.QueryRow(ctx, `
		SELECT `+invitationColumns+`
		FROM employee_invitations
		WHERE email = $1 AND NOT claimed
		ORDER BY created_at ASC
		LIMIT 1
		FOR UPDATE
	`, email).Scan(invitationDest(&inv)...)
	if err != nil {
		if isNotFound(err) {
			return invitation.Invitation{}, invitation.ErrInvitationNotFound
		}
		return invitation.Invitation{}, fmt.Errorf("failed to get invitation: %w", err)
	}
	return inv, nil
}

// ExistsUnclaimedByEmail checks if email has an unclaimed invitation
func (r *invitationRepositoryImpl) ExistsUnclaimedByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM employee_invitations WHERE email = $1 AND NOT claimed)
	`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check invitation: %w", err)
	}
	return exists, nil
}

// MarkClaimed marks an invitation as claimed by userID
func (r *invitationRepositoryImpl) MarkClaimed(ctx context.Context, id, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employee_invitations
		SET claimed = TRUE, claimed_by = $1, claimed_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND NOT claimed
	`, userID, id)
	if err != nil {
		return false, fmt.Errorf("failed to claim invitation: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List returns invitations, optionally filtered by claimed state
func (r *invitationRepositoryImpl) List(ctx context.Context, claimed *bool) ([]invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+invitationColumns+`
		FROM employee_invitations
		WHERE $1::boolean IS NULL OR claimed = $1::boolean
		ORDER BY created_at DESC
	`, claimed)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	invitations := []invitation.Invitation{}
	for rows.Next() {
		var inv invitation.Invitation
		if err := rows.Scan(invitationDest(&inv)...); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}
