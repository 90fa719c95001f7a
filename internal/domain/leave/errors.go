package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("Leave request not found")
	ErrInvalidReviewStatus  = errors.New("status must be approved or rejected")
)
