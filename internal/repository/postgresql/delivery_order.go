package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/delivery"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const deliveryOrderColumns = `
	d.id, d.order_number, d.client_id, d.client_name, d.items, d.status,
	d.driver_id, d.delivery_date, d.proof_ref, d.notes, d.created_by,
	d.created_at, d.updated_at`

type deliveryOrderRepositoryImpl struct {
	db *database.DB
}

func NewDeliveryOrderRepository(db *database.DB) delivery.DeliveryOrderRepository {
	return &deliveryOrderRepositoryImpl{db: db}
}

func deliveryOrderDest(o *delivery.DeliveryOrder) []any {
	return []any{
		&o.ID,
		&o.OrderNumber,
		&o.ClientID,
		&o.ClientName,
		&o.Items,
		&o.Status,
		&o.DriverID,
		&o.DeliveryDate,
		&o.ProofRef,
		&o.Notes,
		&o.CreatedBy,
		&o.CreatedAt,
		&o.UpdatedAt,
	}
}

func scanDeliveryOrders(rows pgx.Rows) ([]delivery.DeliveryOrder, error) {
	defer rows.Close()

	orders := []delivery.DeliveryOrder{}
	for rows.Next() {
		var o delivery.DeliveryOrder
		if err := rows.Scan(deliveryOrderDest(&o)...); err != nil {
			return nil, fmt.Errorf("failed to scan delivery order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Create implements delivery.DeliveryOrderRepository.
func (r *deliveryOrderRepositoryImpl) Create(ctx context.Context, order delivery.DeliveryOrder) (delivery.DeliveryOrder, error) {
	q := GetQuerier(ctx, r.db)

	if order.Items == nil {
		order.Items = []delivery.Item{}
	}

	query := `
		INSERT INTO delivery_orders AS d (
			order_number, client_id, client_name, items, status,
			driver_id, delivery_date, proof_ref, notes, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + deliveryOrderColumns

	var created delivery.DeliveryOrder
	err := q.QueryRow(ctx, query,
		order.OrderNumber,
		order.ClientID,
		order.ClientName,
		order.Items,
		string(order.Status),
		order.DriverID,
		order.DeliveryDate,
		order.ProofRef,
		order.Notes,
		order.CreatedBy,
	).Scan(deliveryOrderDest(&created)...)
	if err != nil {
		if isUniqueViolation(err) {
			return delivery.DeliveryOrder{}, delivery.ErrOrderNumberExists
		}
		return delivery.DeliveryOrder{}, fmt.Errorf("failed to create delivery order: %w", err)
	}
	return created, nil
}

func (r *deliveryOrderRepositoryImpl) getOne(ctx context.Context, where string, arg any) (delivery.DeliveryOrder, error) {
	q := GetQuerier(ctx, r.db)

	var o delivery.DeliveryOrder
	err := q.QueryRow(ctx, `SELECT `+deliveryOrderColumns+` FROM delivery_orders d WHERE `+where, arg).
		Scan(deliveryOrderDest(&o)...)
	if err != nil {
		if isNotFound(err) {
			return delivery.DeliveryOrder{}, delivery.ErrDeliveryNotFound
		}
		return delivery.DeliveryOrder{}, fmt.Errorf("failed to get delivery order: %w", err)
	}
	return o, nil
}

// GetByID implements delivery.DeliveryOrderRepository.
func (r *deliveryOrderRepositoryImpl) GetByID(ctx context.Context, id string) (delivery.DeliveryOrder, error) {
	return r.getOne(ctx, "d.id = $1", id)
}

// GetByOrderNumber implements delivery.DeliveryOrderRepository.
func (r *deliveryOrderRepositoryImpl) GetByOrderNumber(ctx context.Context, orderNumber string) (delivery.DeliveryOrder, error) {
	return r.getOne(ctx, "d.order_number = $1", orderNumber)
}

// GetDetail implements delivery.DeliveryOrderRepository.
func (r *deliveryOrderRepositoryImpl) GetDetail(ctx context.Context, id string) (delivery.DeliveryOrderDetail, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + deliveryOrderColumns + `, u.name, u.email
		FROM delivery_orders d
		LEFT JOIN users u ON u.id = d.driver_id
		WHERE d.id = $1
	`

	var detail delivery.DeliveryOrderDetail
	dest := append(deliveryOrderDest(&detail.DeliveryOrder), &detail.DriverName, &detail.DriverEmail)
	if err := q.QueryRow(ctx, query, id).Scan(dest...); err != nil {
		if isNotFound(err) {
			return delivery.DeliveryOrderDetail{}, delivery.ErrDeliveryNotFound
		}
		return delivery.DeliveryOrderDetail{}, fmt.Errorf("failed to get delivery detail: %w", err)
	}
	return detail, nil
}

// ExistsByOrderNumber implements delivery.DeliveryOrderRepository.
func (r *deliveryOrderRepositoryImpl) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM delivery_orders WHERE order_number = $1)`, orderNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check order number: %w", err)
	}
	return exists, nil
}

// List implements delivery.DeliveryOrderRepository.
func (r *deliveryOrderRepositoryImpl) List(ctx context.Context, filter delivery.DeliveryFilter) ([]delivery.DeliveryOrder, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	whereClause := "WHERE 1=1"
	args := []any{}
	argIndex := 1

	if filter.Search != nil && *filter.Search != "" {
		whereClause += fmt.Sprintf(" AND to_tsvector('simple', d.client_name) @@ plainto_tsquery('simple', $%d)", argIndex)
		args = append(args, *filter.Search)
		argIndex++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND d.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.DriverID != nil {
		whereClause += fmt.Sprintf(" AND d.driver_id = $%d", argIndex)
		args = append(args, *filter.DriverID)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM delivery_orders d `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count delivery orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM delivery_orders d
		%s
		ORDER BY d.created_at DESC
		LIMIT $%d OFFSET $%d
	`, deliveryOrderColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list delivery orders: %w", err)
	}
	orders, err := scanDeliveryOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListByDriver implements delivery.DeliveryOrderRepository.
func (r *deliveryOrderRepositoryImpl) ListByDriver(ctx context.Context, driverID string) ([]delivery.DeliveryOrder, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+deliveryOrderColumns+`
		FROM delivery_orders d
		WHERE d.driver_id = $1
		ORDER BY d.created_at DESC
	`, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list driver orders: %w", err)
	}
	return scanDeliveryOrders(rows)
}

// CountCompletedByDriver implements delivery.DeliveryOrderRepository.
func (r *deliveryOrderRepositoryImpl) CountCompletedByDriver(ctx context.Context, driverID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM delivery_orders
		WHERE driver_id = $1
		  AND status IN ('delivered', 'invoiced')
		  AND delivery_date BETWEEN $2 AND $3
	`, driverID, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed deliveries: %w", err)
	}
	return count, nil
}

// CountByStatus implements delivery.DeliveryOrderRepository.
func (r *deliveryOrderRepositoryImpl) CountByStatus(ctx context.Context) (map[delivery.Status]int64, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT status, COUNT(*) FROM delivery_orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count delivery orders: %w", err)
	}
	defer rows.Close()

	counts := make(map[delivery.Status]int64, len(delivery.AllStatuses))
	for rows.Next() {
		var status delivery.Status
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// Update implements delivery.DeliveryOrderRepository.
func (r *deliveryOrderRepositoryImpl) Update(ctx context.Context, order delivery.DeliveryOrder) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE delivery_orders
		SET status = $1, driver_id = $2, delivery_date = $3, proof_ref = $4, notes = $5,
			updated_at = $6
		WHERE id = $7
	`,
		string(order.Status),
		order.DriverID,
		order.DeliveryDate,
		order.ProofRef,
		order.Notes,
		order.UpdatedAt,
		order.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update delivery order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return delivery.ErrDeliveryNotFound
	}
	return nil
}
