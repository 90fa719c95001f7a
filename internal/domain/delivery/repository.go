package delivery

import (
	"context"
	"time"
)

type DeliveryOrderRepository interface {
	Create(ctx context.Context, order DeliveryOrder) (DeliveryOrder, error)
	GetByID(ctx context.Context, id string) (DeliveryOrder, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (DeliveryOrder, error)
	GetDetail(ctx context.Context, id string) (DeliveryOrderDetail, error)
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
	List(ctx context.Context, filter DeliveryFilter) ([]DeliveryOrder, int64, error)
	ListByDriver(ctx context.Context, driverID string) ([]DeliveryOrder, error)
	// CountCompletedByDriver counts delivered or invoiced orders with a
	// delivery date inside [from, to].
	CountCompletedByDriver(ctx context.Context, driverID string, from, to time.Time) (int, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	Update(ctx context.Context, order DeliveryOrder) error
}
