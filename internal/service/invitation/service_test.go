package invitation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/invitation"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeInvitationRepo struct {
	invitations []invitation.Invitation
	claims      int
}

func (r *fakeInvitationRepo) Create(_ context.Context, inv invitation.Invitation) (invitation.Invitation, error) {
	for _, existing := range r.invitations {
		if !existing.Claimed && existing.Email == inv.Email {
			return invitation.Invitation{}, invitation.ErrEmailAlreadyInvited
		}
	}
	inv.ID = fmt.Sprintf("inv-%d", len(r.invitations)+1)
	r.invitations = append(r.invitations, inv)
	return inv, nil
}

func (r *fakeInvitationRepo) GetUnclaimedByEmail(_ context.Context, email string) (invitation.Invitation, error) {
	for _, inv := range r.invitations {
		if !inv.Claimed && inv.Email == email {
			return inv, nil
		}
	}
	return invitation.Invitation{}, invitation.ErrInvitationNotFound
}

func (r *fakeInvitationRepo) ExistsUnclaimedByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetUnclaimedByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeInvitationRepo) MarkClaimed(_ context.Context, id, userID string) (bool, error) {
	for i := range r.invitations {
		if r.invitations[i].ID == id && !r.invitations[i].Claimed {
			now := time.Now()
			r.invitations[i].Claimed = true
			r.invitations[i].ClaimedBy = &userID
			r.invitations[i].ClaimedAt = &now
			r.claims++
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInvitationRepo) List(_ context.Context, claimed *bool) ([]invitation.Invitation, error) {
	var out []invitation.Invitation
	for _, inv := range r.invitations {
		if claimed == nil || inv.Claimed == *claimed {
			out = append(out, inv)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users   map[string]user.User
	updates int
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByIDs(context.Context, []string) ([]user.User, error)    { return nil, nil }
func (r *fakeUserRepo) ListByRole(context.Context, user.Role) ([]user.User, error) { return nil, nil }
func (r *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error)   { return u, nil }

func (r *fakeUserRepo) UpdateProfile(_ context.Context, u user.User) error {
	r.updates++
	r.users[u.ID] = u
	return nil
}

var hr = user.Identity{UserID: "hr-1", Role: user.RoleHR}

func setup() (*InvitationServiceImpl, *fakeInvitationRepo, *fakeUserRepo) {
	invs := &fakeInvitationRepo{}
	users := &fakeUserRepo{users: map[string]user.User{
		"u-1": {ID: "u-1", Email: "budi@example.com", Name: "budi", Role: user.RoleMember, Status: user.StatusActive},
		"u-2": {ID: "u-2", Email: "sari@example.com", Role: user.RoleDriver},
	}}
	return NewInvitationService(fakeTx{}, invs, users), invs, users
}

func TestClaim_AppliesProfileOnceAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, invs, users := setup()
	salary := decimal.NewFromInt(4500000)
	sick := 12

	_, err := svc.Create(ctx, hr, invitation.CreateInvitationRequest{
		Email:            "budi@example.com",
		Name:             "Budi Santoso",
		Role:             "driver",
		BaseSalary:       &salary,
		InitialSickLeave: &sick,
	})
	require.NoError(t, err)

	actor := user.Identity{UserID: "u-1", Email: "budi@example.com", Role: user.RoleMember}
	first, err := svc.Claim(ctx, actor)
	require.NoError(t, err)
	assert.True(t, first.Claimed)
	require.NotNil(t, first.Role)
	assert.Equal(t, "driver", *first.Role)

	claimed := users.users["u-1"]
	assert.Equal(t, user.RoleDriver, claimed.Role)
	assert.Equal(t, "Budi Santoso", claimed.Name)
	assert.Equal(t, 12, claimed.SickLeaveEntitlement())
	assert.True(t, invs.invitations[0].Claimed)
	assert.Equal(t, "u-1", *invs.invitations[0].ClaimedBy)

	second, err := svc.Claim(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, invitation.ClaimResponse{Claimed: false}, second)
	assert.Equal(t, 1, users.updates)
	assert.Equal(t, 1, invs.claims)
}

func TestClaim_EmailMustMatchExactly(t *testing.T) {
	ctx := context.Background()
	svc, invs, users := setup()
	invs.invitations = append(invs.invitations, invitation.Invitation{ID: "inv-x", Email: "Budi@example.com", Role: user.RoleDriver})

	resp, err := svc.Claim(ctx, user.Identity{UserID: "u-1", Role: user.RoleMember})
	require.NoError(t, err)
	assert.False(t, resp.Claimed)
	assert.Equal(t, 0, users.updates)
}

func TestCreate_RejectsDuplicatesAndExistingEmployees(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup()

	req := invitation.CreateInvitationRequest{Email: "new@example.com", Name: "New", Role: "hr"}
	_, err := svc.Create(ctx, hr, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, hr, req)
	assert.ErrorIs(t, err, invitation.ErrEmailAlreadyInvited)

	_, err = svc.Create(ctx, hr, invitation.CreateInvitationRequest{Email: "sari@example.com", Name: "Sari", Role: "driver"})
	assert.ErrorIs(t, err, invitation.ErrEmailAlreadyUser)

	_, err = svc.Create(ctx, hr, invitation.CreateInvitationRequest{Email: "x@example.com", Name: "X", Role: "member"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.Create(ctx, user.Identity{UserID: "d", Role: user.RoleDriver}, req)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

// staleCheckRepo misses a concurrent invitation in the existence check so
// only the insert can catch the duplicate.
type staleCheckRepo struct{ *fakeInvitationRepo }

func (staleCheckRepo) ExistsUnclaimedByEmail(context.Context, string) (bool, error) {
	return false, nil
}

func TestCreate_ConcurrentDuplicateRejectedByInsert(t *testing.T) {
	ctx := context.Background()
	_, invs, users := setup()
	invs.invitations = []invitation.Invitation{{ID: "inv-0", Email: "new@example.com", Role: user.RoleDriver}}
	svc := NewInvitationService(fakeTx{}, staleCheckRepo{invs}, users)

	_, err := svc.Create(ctx, hr, invitation.CreateInvitationRequest{Email: "new@example.com", Name: "New", Role: "driver"})
	assert.ErrorIs(t, err, invitation.ErrEmailAlreadyInvited)
	assert.Len(t, invs.invitations, 1)
}

func TestList_FiltersByClaimed(t *testing.T) {
	ctx := context.Background()
	svc, invs, _ := setup()
	invs.invitations = []invitation.Invitation{
		{ID: "a", Email: "a@example.com", Claimed: true},
		{ID: "b", Email: "b@example.com"},
	}

	open := false
	list, err := svc.List(ctx, hr, &open)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)

	all, err := svc.List(ctx, hr, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
