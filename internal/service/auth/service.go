package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/invitation"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx          database.Transactor
	users       user.UserRepository
	tokens      auth.RefreshTokenRepository
	jwt         jwt.Service
	invitations invitation.InvitationService
	bcryptCost  int
}

func NewAuthService(
	tx database.Transactor,
	users user.UserRepository,
	tokens auth.RefreshTokenRepository,
	jwtService jwt.Service,
	invitations invitation.InvitationService,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		tx:          tx,
		users:       users,
		tokens:      tokens,
		jwt:         jwtService,
		invitations: invitations,
		bcryptCost:  bcrypt.DefaultCost,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func identityOf(u user.User) user.Identity {
	return user.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// issueTokens signs a token pair for u and stores the refresh token.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	err := a.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(identityOf(u))
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwt.GenerateRefreshToken(u.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.tokens.CreateRefreshToken(ctx, u.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, session); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return tokenResponse, nil
}

// claimAndReload binds a pending invitation to u and returns the user as
// stored afterwards, so issued tokens carry the invited role.
func (a *AuthServiceImpl) claimAndReload(ctx context.Context, u user.User) (user.User, bool, error) {
	claim, err := a.invitations.Claim(ctx, identityOf(u))
	if err != nil {
		return user.User{}, false, fmt.Errorf("failed to claim invitation: %w", err)
	}
	if !claim.Claimed {
		return u, false, nil
	}

	reloaded, err := a.users.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, false, fmt.Errorf("failed to reload user after claim: %w", err)
	}
	return reloaded, true, nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}
	email := strings.TrimSpace(req.Email)

	_, err := a.users.GetByEmail(ctx, email)
	if err == nil {
		return auth.TokenResponse{}, user.ErrUserEmailExists
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.users.Create(ctx, user.User{
		Email:        email,
		PasswordHash: &hashed,
		Name:         strings.TrimSpace(req.Name),
		Role:         user.RoleMember,
		Status:       user.StatusActive,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return auth.TokenResponse{}, err
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	created, claimed, err := a.claimAndReload(ctx, created)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	tokens, err := a.issueTokens(ctx, created, session)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	tokens.InvitationClaimed = claimed

	slog.Info("User registered", "user_id", created.ID, "role", created.Role)
	return tokens, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := a.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if u.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	u, claimed, err := a.claimAndReload(ctx, u)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	tokens, err := a.issueTokens(ctx, u, session)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	tokens.InvitationClaimed = claimed
	return tokens, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	userID, err := a.jwt.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.tokens.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	// The role is read again so a claimed invitation or role change takes effect.
	u, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(identityOf(u))
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return resp, nil
}

// Logout implements auth.AuthService. Unknown or already revoked tokens are ignored.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return a.tx.WithTransaction(ctx, func(ctx context.Context) error {
		revoked, err := a.tokens.IsRefreshTokenRevoked(ctx, refreshToken)
		if err != nil {
			return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
		}
		if revoked {
			return nil
		}
		if err := a.tokens.RevokeRefreshToken(ctx, refreshToken); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
		return nil
	})
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, actor user.Identity) (auth.MeResponse, error) {
	if !actor.IsAuthenticated() {
		return auth.MeResponse{}, auth.ErrUnauthorized
	}
	u, err := a.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return auth.MeResponse{}, err
	}
	return auth.MeResponse{UserResponse: user.NewUserResponse(u)}, nil
}

var _ auth.AuthService = (*AuthServiceImpl)(nil)
