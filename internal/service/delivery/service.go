package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"mime/multipart"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/delivery"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/material"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/file"
)

// orderNumberAttempts bounds the retries of the order number allocator.
const orderNumberAttempts = 10

type DeliveryServiceImpl struct {
	tx        database.Transactor
	orders    delivery.DeliveryOrderRepository
	clients   client.ClientRepository
	materials material.MaterialRepository
	users     user.UserRepository
	files     file.FileService
	events    sse.Publisher

	now  func() time.Time
	intN func(n int) int
}

func NewDeliveryService(
	tx database.Transactor,
	orders delivery.DeliveryOrderRepository,
	clients client.ClientRepository,
	materials material.MaterialRepository,
	users user.UserRepository,
	files file.FileService,
	events sse.Publisher,
) *DeliveryServiceImpl {
	return &DeliveryServiceImpl{
		tx:        tx,
		orders:    orders,
		clients:   clients,
		materials: materials,
		users:     users,
		files:     files,
		events:    events,
		now:       time.Now,
		intN:      rand.IntN,
	}
}

func canManage(actor user.Identity) bool {
	return user.HasPermission(actor.Role, user.PermissionDeliveryManage)
}

// allocateOrderNumber picks a random DO-<year>-<4 digits> number that is not
// taken yet. The unique index on order_number backs the check.
func (s *DeliveryServiceImpl) allocateOrderNumber(ctx context.Context) (string, error) {
	year := s.now().Year()
	for range orderNumberAttempts {
		candidate := fmt.Sprintf("DO-%d-%04d", year, s.intN(10000))
		exists, err := s.orders.ExistsByOrderNumber(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check order number: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", delivery.ErrOrderNumberExhausted
}

func (s *DeliveryServiceImpl) requireDriver(ctx context.Context, driverID string) error {
	driver, err := s.users.GetByID(ctx, driverID)
	if err != nil {
		return fmt.Errorf("failed to get driver: %w", err)
	}
	if !driver.IsDriver() {
		return user.ErrNotADriver
	}
	return nil
}

func (s *DeliveryServiceImpl) publish(order delivery.DeliveryOrder) {
	var recipients []string
	if order.DriverID != nil {
		recipients = append(recipients, *order.DriverID)
	}
	if order.CreatedBy != nil {
		recipients = append(recipients, *order.CreatedBy)
	}
	s.events.PublishToMany(recipients, sse.Event{
		Event: sse.EventDeliveryUpdated,
		Data:  delivery.NewDeliveryOrderResponse(order),
	})
}

// Create implements delivery.DeliveryService.
func (s *DeliveryServiceImpl) Create(ctx context.Context, actor user.Identity, req delivery.CreateDeliveryRequest) (delivery.DeliveryOrderResponse, error) {
	if !canManage(actor) {
		return delivery.DeliveryOrderResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return delivery.DeliveryOrderResponse{}, err
	}

	var created delivery.DeliveryOrder
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		status := delivery.StatusPending
		if req.DriverID != nil {
			if err := s.requireDriver(ctx, *req.DriverID); err != nil {
				return err
			}
			status = delivery.StatusAssigned
		}

		c, err := s.clients.Upsert(ctx, req.ClientName)
		if err != nil {
			return fmt.Errorf("failed to upsert client: %w", err)
		}

		seen := make(map[string]struct{}, len(req.Items))
		for _, item := range req.Items {
			if _, ok := seen[item.Description]; ok {
				continue
			}
			seen[item.Description] = struct{}{}
			if _, err := s.materials.Upsert(ctx, item.Description); err != nil {
				return fmt.Errorf("failed to upsert material: %w", err)
			}
		}

		orderNumber, err := s.allocateOrderNumber(ctx)
		if err != nil {
			return err
		}

		createdBy := actor.UserID
		created, err = s.orders.Create(ctx, delivery.DeliveryOrder{
			OrderNumber: orderNumber,
			ClientID:    &c.ID,
			ClientName:  c.Name,
			Items:       req.Items,
			Status:      status,
			DriverID:    req.DriverID,
			Notes:       req.Notes,
			CreatedBy:   &createdBy,
		})
		if err != nil {
			return fmt.Errorf("failed to create delivery order: %w", err)
		}
		return nil
	})
	if err != nil {
		return delivery.DeliveryOrderResponse{}, err
	}

	slog.Info("Created delivery order", "order_number", created.OrderNumber, "status", created.Status)
	s.publish(created)
	return delivery.NewDeliveryOrderResponse(created), nil
}

// transition loads an order inside a transaction, lets mutate check and
// apply the change, enforces the status table and persists the result.
// getOrder treats a malformed id as a missing order.
func (s *DeliveryServiceImpl) getOrder(ctx context.Context, orderID string) (delivery.DeliveryOrder, error) {
	if !validator.IsValidUUID(orderID) {
		return delivery.DeliveryOrder{}, delivery.ErrDeliveryNotFound
	}
	return s.orders.GetByID(ctx, orderID)
}

func (s *DeliveryServiceImpl) transition(ctx context.Context, orderID string, to delivery.Status, mutate func(ctx context.Context, o *delivery.DeliveryOrder) error) (delivery.DeliveryOrder, error) {
	var order delivery.DeliveryOrder
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.getOrder(ctx, orderID)
		if err != nil {
			return err
		}

		if err := mutate(ctx, &order); err != nil {
			return err
		}

		if !delivery.CanTransition(order.Status, to) {
			return fmt.Errorf("%w: %s to %s", delivery.ErrInvalidStatusTransition, order.Status, to)
		}
		order.Status = to
		order.UpdatedAt = s.now()

		if err := s.orders.Update(ctx, order); err != nil {
			return fmt.Errorf("failed to update delivery order: %w", err)
		}
		return nil
	})
	if err != nil {
		return delivery.DeliveryOrder{}, err
	}

	s.publish(order)
	return order, nil
}

// AssignDriver implements delivery.DeliveryService.
func (s *DeliveryServiceImpl) AssignDriver(ctx context.Context, actor user.Identity, orderID string, req delivery.AssignDriverRequest) (delivery.DeliveryOrderResponse, error) {
	if !canManage(actor) {
		return delivery.DeliveryOrderResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return delivery.DeliveryOrderResponse{}, err
	}

	order, err := s.transition(ctx, orderID, delivery.StatusAssigned, func(ctx context.Context, o *delivery.DeliveryOrder) error {
		if err := s.requireDriver(ctx, req.DriverID); err != nil {
			return err
		}
		o.DriverID = &req.DriverID
		return nil
	})
	if err != nil {
		return delivery.DeliveryOrderResponse{}, err
	}
	return delivery.NewDeliveryOrderResponse(order), nil
}

// StartDelivery implements delivery.DeliveryService.
func (s *DeliveryServiceImpl) StartDelivery(ctx context.Context, actor user.Identity, orderID string) (delivery.DeliveryOrderResponse, error) {
	if !actor.IsAuthenticated() {
		return delivery.DeliveryOrderResponse{}, auth.ErrUnauthorized
	}

	order, err := s.transition(ctx, orderID, delivery.StatusInProgress, func(_ context.Context, o *delivery.DeliveryOrder) error {
		if !o.IsAssignedTo(actor.UserID) {
			return delivery.ErrInvalidDelivery
		}
		return nil
	})
	if err != nil {
		return delivery.DeliveryOrderResponse{}, err
	}
	return delivery.NewDeliveryOrderResponse(order), nil
}

// ConfirmDelivery implements delivery.DeliveryService.
func (s *DeliveryServiceImpl) ConfirmDelivery(ctx context.Context, actor user.Identity, orderID string, req delivery.ConfirmDeliveryRequest) (delivery.DeliveryOrderResponse, error) {
	if !actor.IsAuthenticated() {
		return delivery.DeliveryOrderResponse{}, auth.ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return delivery.DeliveryOrderResponse{}, err
	}

	order, err := s.transition(ctx, orderID, delivery.StatusDelivered, func(_ context.Context, o *delivery.DeliveryOrder) error {
		if !canManage(actor) && !o.IsAssignedTo(actor.UserID) {
			return delivery.ErrInvalidDelivery
		}
		now := s.now()
		o.ProofRef = &req.ProofRef
		o.DeliveryDate = &now
		if req.Notes != nil {
			o.Notes = req.Notes
		}
		return nil
	})
	if err != nil {
		return delivery.DeliveryOrderResponse{}, err
	}
	return delivery.NewDeliveryOrderResponse(order), nil
}

// MarkInvoiced implements delivery.DeliveryService.
func (s *DeliveryServiceImpl) MarkInvoiced(ctx context.Context, actor user.Identity, orderID string) (delivery.DeliveryOrderResponse, error) {
	if !canManage(actor) {
		return delivery.DeliveryOrderResponse{}, user.ErrInsufficientPermissions
	}

	order, err := s.transition(ctx, orderID, delivery.StatusInvoiced, func(context.Context, *delivery.DeliveryOrder) error {
		return nil
	})
	if err != nil {
		return delivery.DeliveryOrderResponse{}, err
	}
	return delivery.NewDeliveryOrderResponse(order), nil
}

// UploadProof implements delivery.DeliveryService.
func (s *DeliveryServiceImpl) UploadProof(ctx context.Context, actor user.Identity, orderID string, f multipart.File, header *multipart.FileHeader) (string, error) {
	if !actor.IsAuthenticated() {
		return "", auth.ErrUnauthorized
	}
	if f == nil || header == nil {
		return "", delivery.ErrProofRequired
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	if !canManage(actor) && !order.IsAssignedTo(actor.UserID) {
		return "", delivery.ErrInvalidDelivery
	}

	return s.files.UploadDeliveryProof(ctx, order.ID, f, header.Filename)
}

// ConfirmWithProof implements delivery.DeliveryService.
func (s *DeliveryServiceImpl) ConfirmWithProof(ctx context.Context, actor user.Identity, orderID string, f multipart.File, header *multipart.FileHeader, notes *string) (delivery.DeliveryOrderResponse, error) {
	ref, err := s.UploadProof(ctx, actor, orderID, f, header)
	if err != nil {
		return delivery.DeliveryOrderResponse{}, err
	}

	order, err := s.ConfirmDelivery(ctx, actor, orderID, delivery.ConfirmDeliveryRequest{ProofRef: ref, Notes: notes})
	if err != nil {
		if delErr := s.files.DeleteFile(ctx, ref); delErr != nil {
			slog.Warn("Failed to remove orphaned delivery proof", "ref", ref, "error", delErr)
		}
		return delivery.DeliveryOrderResponse{}, err
	}
	return order, nil
}

// List implements delivery.DeliveryService. Drivers only see their own orders.
func (s *DeliveryServiceImpl) List(ctx context.Context, actor user.Identity, filter delivery.DeliveryFilter) (delivery.ListDeliveryResponse, error) {
	if !actor.IsAuthenticated() {
		return delivery.ListDeliveryResponse{}, auth.ErrUnauthorized
	}
	if err := filter.Validate(); err != nil {
		return delivery.ListDeliveryResponse{}, err
	}
	if actor.Role == user.RoleDriver {
		filter.DriverID = &actor.UserID
	}

	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return delivery.ListDeliveryResponse{}, fmt.Errorf("failed to list delivery orders: %w", err)
	}

	responses := make([]delivery.DeliveryOrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, delivery.NewDeliveryOrderResponse(o))
	}

	return delivery.ListDeliveryResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Orders:     responses,
	}, nil
}

func (s *DeliveryServiceImpl) visible(actor user.Identity, o delivery.DeliveryOrder) error {
	if !actor.IsAuthenticated() {
		return auth.ErrUnauthorized
	}
	if actor.Role == user.RoleDriver && !o.IsAssignedTo(actor.UserID) {
		return user.ErrAccessDenied
	}
	return nil
}

// Get implements delivery.DeliveryService.
func (s *DeliveryServiceImpl) Get(ctx context.Context, actor user.Identity, orderID string) (delivery.DeliveryOrderResponse, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return delivery.DeliveryOrderResponse{}, err
	}
	if err := s.visible(actor, order); err != nil {
		return delivery.DeliveryOrderResponse{}, err
	}
	return delivery.NewDeliveryOrderResponse(order), nil
}

// GetByOrderNumber implements delivery.DeliveryService.
func (s *DeliveryServiceImpl) GetByOrderNumber(ctx context.Context, actor user.Identity, orderNumber string) (delivery.DeliveryOrderResponse, error) {
	if !validator.IsValidOrderNumber(orderNumber) {
		return delivery.DeliveryOrderResponse{}, delivery.ErrDeliveryNotFound
	}

	order, err := s.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return delivery.DeliveryOrderResponse{}, err
	}
	if err := s.visible(actor, order); err != nil {
		return delivery.DeliveryOrderResponse{}, err
	}
	return delivery.NewDeliveryOrderResponse(order), nil
}

// GetDetail implements delivery.DeliveryService.
func (s *DeliveryServiceImpl) GetDetail(ctx context.Context, actor user.Identity, orderID string) (delivery.DeliveryOrderDetailResponse, error) {
	if !validator.IsValidUUID(orderID) {
		return delivery.DeliveryOrderDetailResponse{}, delivery.ErrDeliveryNotFound
	}

	detail, err := s.orders.GetDetail(ctx, orderID)
	if err != nil {
		return delivery.DeliveryOrderDetailResponse{}, err
	}
	if err := s.visible(actor, detail.DeliveryOrder); err != nil {
		return delivery.DeliveryOrderDetailResponse{}, err
	}

	resp := delivery.DeliveryOrderDetailResponse{
		DeliveryOrderResponse: delivery.NewDeliveryOrderResponse(detail.DeliveryOrder),
		DriverName:            detail.DriverName,
		DriverEmail:           detail.DriverEmail,
	}
	if detail.ProofRef != nil {
		url, err := s.files.GetFileURL(ctx, *detail.ProofRef)
		if err != nil {
			// Proof references may also be external URLs typed in by hand.
			slog.Warn("Failed to resolve proof URL", "order_id", detail.ID, "error", err)
		} else {
			resp.ProofURL = &url
		}
	}
	return resp, nil
}

// Stats implements delivery.DeliveryService.
func (s *DeliveryServiceImpl) Stats(ctx context.Context, actor user.Identity) (delivery.StatsResponse, error) {
	if !actor.CanReview() {
		return delivery.StatsResponse{}, user.ErrInsufficientPermissions
	}

	counts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return delivery.StatsResponse{}, fmt.Errorf("failed to count delivery orders: %w", err)
	}

	resp := delivery.StatsResponse{Counts: make(map[string]int64, len(delivery.AllStatuses))}
	for _, st := range delivery.AllStatuses {
		resp.Counts[string(st)] = counts[st]
		resp.Total += counts[st]
	}
	return resp, nil
}

var _ delivery.DeliveryService = (*DeliveryServiceImpl)(nil)
