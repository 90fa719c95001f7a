package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/invitation"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUsers struct {
	user.UserRepository
	byID map[string]user.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) Create(_ context.Context, u user.User) (user.User, error) {
	u.ID = fmt.Sprintf("u-%d", len(f.byID)+1)
	f.byID[u.ID] = u
	return u, nil
}

type fakeTokens struct {
	issued  map[string]string
	revoked map[string]bool
}

func (f *fakeTokens) CreateRefreshToken(_ context.Context, userID, token string, _ int64, _ auth.SessionTrackingRequest) error {
	f.issued[token] = userID
	return nil
}

func (f *fakeTokens) IsRefreshTokenRevoked(_ context.Context, token string) (bool, error) {
	_, known := f.issued[token]
	return !known || f.revoked[token], nil
}

func (f *fakeTokens) RevokeRefreshToken(_ context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

// fakeInvitations promotes users whose email has a pending invitation.
type fakeInvitations struct {
	invitation.InvitationService
	users   *fakeUsers
	pending map[string]user.Role
}

func (f *fakeInvitations) Claim(_ context.Context, actor user.Identity) (invitation.ClaimResponse, error) {
	role, ok := f.pending[actor.Email]
	if !ok {
		return invitation.ClaimResponse{Claimed: false}, nil
	}
	delete(f.pending, actor.Email)
	u := f.users.byID[actor.UserID]
	u.Role = role
	f.users.byID[u.ID] = u
	r := string(role)
	return invitation.ClaimResponse{Claimed: true, Role: &r}, nil
}

type fixture struct {
	svc         *AuthServiceImpl
	users       *fakeUsers
	tokens      *fakeTokens
	invitations *fakeInvitations
	jwt         *jwt.JWTService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	users := &fakeUsers{byID: map[string]user.User{}}
	tokens := &fakeTokens{issued: map[string]string{}, revoked: map[string]bool{}}
	invitations := &fakeInvitations{users: users, pending: map[string]user.Role{}}
	jwtService, err := jwt.NewJWTService("test-secret-key-with-enough-length", "15m", "24h")
	require.NoError(t, err)

	svc := NewAuthService(fakeTx{}, users, tokens, jwtService, invitations)
	svc.bcryptCost = bcrypt.MinCost
	return fixture{svc: svc, users: users, tokens: tokens, invitations: invitations, jwt: jwtService}
}

func roleOf(t *testing.T, svc *jwt.JWTService, accessToken string) user.Role {
	t.Helper()
	token, err := jwtauth.VerifyToken(svc.JWTAuth(), accessToken)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	identity, err := jwt.IdentityFromClaims(claims)
	require.NoError(t, err)
	return identity.Role
}

func register(t *testing.T, f fixture, email string) auth.TokenResponse {
	t.Helper()
	resp, err := f.svc.Register(context.Background(), auth.RegisterRequest{
		Name:            "Budi",
		Email:           email,
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}, auth.SessionTrackingRequest{UserAgent: "test"})
	require.NoError(t, err)
	return resp
}

func TestRegister_CreatesMember(t *testing.T) {
	f := newFixture(t)

	resp := register(t, f, "budi@example.com")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.False(t, resp.InvitationClaimed)
	assert.Equal(t, user.RoleMember, roleOf(t, f.jwt, resp.AccessToken))
	assert.Contains(t, f.tokens.issued, resp.RefreshToken)

	stored, err := f.users.GetByEmail(context.Background(), "budi@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "secret123", *stored.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	register(t, f, "budi@example.com")

	_, err := f.svc.Register(context.Background(), auth.RegisterRequest{
		Name: "Budi", Email: "budi@example.com", Password: "secret123", ConfirmPassword: "secret123",
	}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Register(context.Background(), auth.RegisterRequest{
		Email: "not-an-email", Password: "short", ConfirmPassword: "other",
	}, auth.SessionTrackingRequest{})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "confirm_password")
}

func TestLogin_ClaimsInvitation(t *testing.T) {
	f := newFixture(t)
	register(t, f, "driver@example.com")
	f.invitations.pending["driver@example.com"] = user.RoleDriver

	resp, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "driver@example.com", Password: "secret123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.True(t, resp.InvitationClaimed)
	assert.Equal(t, user.RoleDriver, roleOf(t, f.jwt, resp.AccessToken))

	// a second login has nothing left to claim
	resp, err = f.svc.Login(context.Background(), auth.LoginRequest{Email: "driver@example.com", Password: "secret123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.False(t, resp.InvitationClaimed)
	assert.Equal(t, user.RoleDriver, roleOf(t, f.jwt, resp.AccessToken))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newFixture(t)
	register(t, f, "budi@example.com")
	ctx := context.Background()

	_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "budi@example.com", Password: "wrong-password"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "secret123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshAndLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tokens := register(t, f, "budi@example.com")

	refreshed, err := f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	require.NoError(t, f.svc.Logout(ctx, tokens.RefreshToken))
	require.NoError(t, f.svc.Logout(ctx, tokens.RefreshToken))

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	register(t, f, "budi@example.com")
	stored, err := f.users.GetByEmail(context.Background(), "budi@example.com")
	require.NoError(t, err)

	me, err := f.svc.Me(context.Background(), user.Identity{UserID: stored.ID, Role: stored.Role})
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", me.Email)
	assert.Equal(t, "member", me.Role)

	_, err = f.svc.Me(context.Background(), user.Identity{})
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}
