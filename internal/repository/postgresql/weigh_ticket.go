package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/weigh_ticket"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
)

const weighTicketColumns = `
	id, ticket_number, truck_number, tonnage, ticket_date, client, material_type,
	image_ref, created_by, created_at`

type weighTicketRepositoryImpl struct {
	db *database.DB
}

func NewWeighTicketRepository(db *database.DB) weigh_ticket.WeighTicketRepository {
	return &weighTicketRepositoryImpl{db: db}
}

func weighTicketDest(t *weigh_ticket.WeighTicket) []any {
	return []any{
		&t.ID, &t.TicketNumber, &t.TruckNumber, &t.Tonnage, &t.TicketDate, &t.Client,
		&t.MaterialType, &t.ImageRef, &t.CreatedBy, &t.CreatedAt,
	}
}

func (r *weighTicketRepositoryImpl) Create(ctx context.Context, t weigh_ticket.WeighTicket) (weigh_ticket.WeighTicket, error) {
	q := GetQuerier(ctx, r.db)

	var created weigh_ticket.WeighTicket
	err := q.QueryRow(ctx, `
		INSERT INTO weigh_tickets (
			ticket_number, truck_number, tonnage, ticket_date, client, material_type,
			image_ref, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+weighTicketColumns,
		t.TicketNumber, t.TruckNumber, t.Tonnage, t.TicketDate, t.Client, t.MaterialType,
		t.ImageRef, t.CreatedBy,
	).Scan(weighTicketDest(&created)...)
	if err != nil {
		if isUniqueViolation(err) {
			return weigh_ticket.WeighTicket{}, weigh_ticket.ErrTicketNumberExists
		}
		return weigh_ticket.WeighTicket{}, fmt.Errorf("failed to create weigh ticket: %w", err)
	}
	return created, nil
}

func (r *weighTicketRepositoryImpl) GetByID(ctx context.Context, id string) (weigh_ticket.WeighTicket, error) {
	q := GetQuerier(ctx, r.db)

	var t weigh_ticket.WeighTicket
	err := q.QueryRow(ctx, `SELECT `+weighTicketColumns+` FROM weigh_tickets WHERE id = $1`, id).
		Scan(weighTicketDest(&t)...)
	if err != nil {
		if isNotFound(err) {
			return weigh_ticket.WeighTicket{}, weigh_ticket.ErrWeighTicketNotFound
		}
		return weigh_ticket.WeighTicket{}, fmt.Errorf("failed to get weigh ticket: %w", err)
	}
	return t, nil
}

func (r *weighTicketRepositoryImpl) List(ctx context.Context, filter weigh_ticket.WeighTicketFilter) ([]weigh_ticket.WeighTicket, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []any{}
	argIndex := 1

	if filter.Client != nil && *filter.Client != "" {
		whereClause += fmt.Sprintf(" AND client ILIKE '%%' || $%d || '%%'", argIndex)
		args = append(args, *filter.Client)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM weigh_tickets `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count weigh tickets: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM weigh_tickets %s ORDER BY ticket_date DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		weighTicketColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list weigh tickets: %w", err)
	}
	defer rows.Close()

	tickets := []weigh_ticket.WeighTicket{}
	for rows.Next() {
		var t weigh_ticket.WeighTicket
		if err := rows.Scan(weighTicketDest(&t)...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan weigh ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}
