package weigh_ticket

import "context"

type WeighTicketRepository interface {
	Create(ctx context.Context, t WeighTicket) (WeighTicket, error)
	GetByID(ctx context.Context, id string) (WeighTicket, error)
	List(ctx context.Context, filter WeighTicketFilter) ([]WeighTicket, int64, error)
}
