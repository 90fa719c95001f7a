package weigh_ticket

import "errors"

var (
	ErrWeighTicketNotFound = errors.New("Weigh ticket not found")
	ErrTicketNumberExists  = errors.New("Weigh ticket number already exists")
)
