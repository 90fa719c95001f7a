package delivery

import (
	"context"
	"mime/multipart"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
)

type DeliveryService interface {
	Create(ctx context.Context, actor user.Identity, req CreateDeliveryRequest) (DeliveryOrderResponse, error)
	AssignDriver(ctx context.Context, actor user.Identity, orderID string, req AssignDriverRequest) (DeliveryOrderResponse, error)
	StartDelivery(ctx context.Context, actor user.Identity, orderID string) (DeliveryOrderResponse, error)
	ConfirmDelivery(ctx context.Context, actor user.Identity, orderID string, req ConfirmDeliveryRequest) (DeliveryOrderResponse, error)
	MarkInvoiced(ctx context.Context, actor user.Identity, orderID string) (DeliveryOrderResponse, error)
	UploadProof(ctx context.Context, actor user.Identity, orderID string, file multipart.File, header *multipart.FileHeader) (string, error)
	// ConfirmWithProof uploads the photo and confirms in one step. The photo
	// is removed again when the confirmation fails.
	ConfirmWithProof(ctx context.Context, actor user.Identity, orderID string, file multipart.File, header *multipart.FileHeader, notes *string) (DeliveryOrderResponse, error)

	List(ctx context.Context, actor user.Identity, filter DeliveryFilter) (ListDeliveryResponse, error)
	Get(ctx context.Context, actor user.Identity, orderID string) (DeliveryOrderResponse, error)
	GetByOrderNumber(ctx context.Context, actor user.Identity, orderNumber string) (DeliveryOrderResponse, error)
	GetDetail(ctx context.Context, actor user.Identity, orderID string) (DeliveryOrderDetailResponse, error)
	Stats(ctx context.Context, actor user.Identity) (StatsResponse, error)
}
