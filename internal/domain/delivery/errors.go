package delivery

import "errors"

var (
	ErrDeliveryNotFound        = errors.New("Delivery order not found")
	ErrInvalidDelivery         = errors.New("Invalid delivery")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrProofRequired           = errors.New("Proof of delivery is required")
	ErrOrderNumberExhausted    = errors.New("could not allocate a unique order number")
	ErrOrderNumberExists       = errors.New("Order number already exists")
)
