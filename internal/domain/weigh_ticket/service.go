package weigh_ticket

import (
	"context"
	"mime/multipart"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
)

type WeighTicketService interface {
	// Create records a ticket. file and header may be nil when no photo is attached.
	Create(ctx context.Context, actor user.Identity, req CreateWeighTicketRequest, file multipart.File, header *multipart.FileHeader) (WeighTicketResponse, error)
	List(ctx context.Context, actor user.Identity, filter WeighTicketFilter) (ListWeighTicketResponse, error)
	Get(ctx context.Context, actor user.Identity, id string) (WeighTicketResponse, error)
}
