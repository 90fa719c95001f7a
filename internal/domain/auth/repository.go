package auth

import "context"

// RefreshTokenRepository persists issued refresh tokens so they can be revoked.
// Only a hash of each token is stored.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, session SessionTrackingRequest) error
	// IsRefreshTokenRevoked reports true for revoked, expired or unknown tokens.
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
}
