package auth

import (
	"context"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest, session SessionTrackingRequest) (TokenResponse, error)
	// Login authenticates the user, claims a pending employee invitation
	// for their email and issues tokens reflecting the resulting role.
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, actor user.Identity) (MeResponse, error)
}
