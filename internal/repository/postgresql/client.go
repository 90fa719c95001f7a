package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
)

type clientRepositoryImpl struct {
	db *database.DB
}

func NewClientRepository(db *database.DB) client.ClientRepository {
	return &clientRepositoryImpl{db: db}
}

// Create implements client.ClientRepository.
func (r *clientRepositoryImpl) Create(ctx context.Context, name string) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	var c client.Client
	err := q.QueryRow(ctx, `
		INSERT INTO clients (name) VALUES ($1)
		RETURNING id, name, created_at
	`, name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return client.Client{}, client.ErrClientNameExists
		}
		return client.Client{}, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}

// Upsert implements client.ClientRepository.
func (r *clientRepositoryImpl) Upsert(ctx context.Context, name string) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	// The no-op update makes RETURNING yield the existing row on conflict.
	var c client.Client
	err := q.QueryRow(ctx, `
		INSERT INTO clients (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at
	`, name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return client.Client{}, fmt.Errorf("failed to upsert client: %w", err)
	}
	return c, nil
}

// List implements client.ClientRepository.
func (r *clientRepositoryImpl) List(ctx context.Context, search string) ([]client.Client, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, created_at
		FROM clients
		WHERE $1::text = '' OR name ILIKE '%' || $1::text || '%'
		ORDER BY name
	`, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := []client.Client{}
	for rows.Next() {
		var c client.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
