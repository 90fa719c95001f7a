package invitation

import "errors"

var (
	ErrInvitationNotFound  = errors.New("invitation not found")
	ErrEmailAlreadyInvited = errors.New("email already has a pending invitation")
	ErrEmailAlreadyUser    = errors.New("a user with this email already exists")
)
