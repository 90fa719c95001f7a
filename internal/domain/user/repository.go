package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByIDs(ctx context.Context, ids []string) ([]User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	Create(ctx context.Context, newUser User) (User, error)
	// UpdateProfile overwrites the employment profile, role and status.
	UpdateProfile(ctx context.Context, u User) error
}
