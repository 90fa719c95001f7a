package weigh_ticket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"mime/multipart"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/weigh_ticket"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/file"
)

type WeighTicketServiceImpl struct {
	tickets weigh_ticket.WeighTicketRepository
	files   file.FileService
}

func NewWeighTicketService(tickets weigh_ticket.WeighTicketRepository, files file.FileService) *WeighTicketServiceImpl {
	return &WeighTicketServiceImpl{
		tickets: tickets,
		files:   files,
	}
}

// Create implements weigh_ticket.WeighTicketService.
func (s *WeighTicketServiceImpl) Create(ctx context.Context, actor user.Identity, req weigh_ticket.CreateWeighTicketRequest, f multipart.File, header *multipart.FileHeader) (weigh_ticket.WeighTicketResponse, error) {
	if !user.HasPermission(actor.Role, user.PermissionWeighTicketCreate) {
		return weigh_ticket.WeighTicketResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return weigh_ticket.WeighTicketResponse{}, err
	}

	var imageRef *string
	if f != nil && header != nil {
		ref, err := s.files.UploadWeighTicketImage(ctx, req.TicketNumber, req.ParsedDate(), f, header.Filename)
		if err != nil {
			return weigh_ticket.WeighTicketResponse{}, err
		}
		imageRef = &ref
	}

	created, err := s.tickets.Create(ctx, weigh_ticket.WeighTicket{
		TicketNumber: req.TicketNumber,
		TruckNumber:  req.TruckNumber,
		Tonnage:      req.Tonnage,
		TicketDate:   req.ParsedDate(),
		Client:       req.Client,
		MaterialType: req.MaterialType,
		ImageRef:     imageRef,
		CreatedBy:    actor.UserID,
	})
	if err != nil {
		if imageRef != nil {
			if delErr := s.files.DeleteFile(ctx, *imageRef); delErr != nil {
				slog.Warn("failed to remove orphaned weigh ticket image", "ref", *imageRef, "error", delErr)
			}
		}
		if errors.Is(err, weigh_ticket.ErrTicketNumberExists) {
			return weigh_ticket.WeighTicketResponse{}, err
		}
		return weigh_ticket.WeighTicketResponse{}, fmt.Errorf("failed to create weigh ticket: %w", err)
	}

	slog.Info("Weigh ticket recorded", "ticket_number", created.TicketNumber, "created_by", actor.UserID)
	return s.withImageURL(ctx, created), nil
}

// List implements weigh_ticket.WeighTicketService.
func (s *WeighTicketServiceImpl) List(ctx context.Context, actor user.Identity, filter weigh_ticket.WeighTicketFilter) (weigh_ticket.ListWeighTicketResponse, error) {
	if !user.HasPermission(actor.Role, user.PermissionWeighTicketView) {
		return weigh_ticket.ListWeighTicketResponse{}, user.ErrInsufficientPermissions
	}
	if err := filter.Validate(); err != nil {
		return weigh_ticket.ListWeighTicketResponse{}, err
	}

	tickets, total, err := s.tickets.List(ctx, filter)
	if err != nil {
		return weigh_ticket.ListWeighTicketResponse{}, fmt.Errorf("failed to list weigh tickets: %w", err)
	}

	responses := make([]weigh_ticket.WeighTicketResponse, 0, len(tickets))
	for _, t := range tickets {
		responses = append(responses, weigh_ticket.NewWeighTicketResponse(t))
	}

	return weigh_ticket.ListWeighTicketResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Tickets:    responses,
	}, nil
}

// Get implements weigh_ticket.WeighTicketService.
func (s *WeighTicketServiceImpl) Get(ctx context.Context, actor user.Identity, id string) (weigh_ticket.WeighTicketResponse, error) {
	if !user.HasPermission(actor.Role, user.PermissionWeighTicketView) {
		return weigh_ticket.WeighTicketResponse{}, user.ErrInsufficientPermissions
	}
	if !validator.IsValidUUID(id) {
		return weigh_ticket.WeighTicketResponse{}, weigh_ticket.ErrWeighTicketNotFound
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return weigh_ticket.WeighTicketResponse{}, err
	}
	return s.withImageURL(ctx, ticket), nil
}

func (s *WeighTicketServiceImpl) withImageURL(ctx context.Context, t weigh_ticket.WeighTicket) weigh_ticket.WeighTicketResponse {
	resp := weigh_ticket.NewWeighTicketResponse(t)
	if t.ImageRef == nil {
		return resp
	}
	url, err := s.files.GetFileURL(ctx, *t.ImageRef)
	if err != nil {
		slog.Warn("failed to resolve weigh ticket image url", "ticket_id", t.ID, "error", err)
		return resp
	}
	resp.ImageURL = &url
	return resp
}

var _ weigh_ticket.WeighTicketService = (*WeighTicketServiceImpl)(nil)
