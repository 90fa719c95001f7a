package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/material"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
)

type materialRepositoryImpl struct {
	db *database.DB
}

func NewMaterialRepository(db *database.DB) material.MaterialRepository {
	return &materialRepositoryImpl{db: db}
}

// Create implements material.MaterialRepository.
func (r *materialRepositoryImpl) Create(ctx context.Context, name string) (material.Material, error) {
	q := GetQuerier(ctx, r.db)

	var m material.Material
	err := q.QueryRow(ctx, `
		INSERT INTO materials (name) VALUES ($1)
		RETURNING id, name, created_at
	`, name).Scan(&m.ID, &m.Name, &m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return material.Material{}, material.ErrMaterialNameExists
		}
		return material.Material{}, fmt.Errorf("failed to create material: %w", err)
	}
	return m, nil
}

// Upsert implements material.MaterialRepository.
func (r *materialRepositoryImpl) Upsert(ctx context.Context, name string) (material.Material, error) {
	q := GetQuerier(ctx, r.db)

	// The no-op update makes RETURNING yield the existing row on conflict.
	var m material.Material
	err := q.QueryRow(ctx, `
		INSERT INTO materials (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at
	`, name).Scan(&m.ID, &m.Name, &m.CreatedAt)
	if err != nil {
		return material.Material{}, fmt.Errorf("failed to upsert material: %w", err)
	}
	return m, nil
}

// List implements material.MaterialRepository.
func (r *materialRepositoryImpl) List(ctx context.Context, search string) ([]material.Material, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, created_at
		FROM materials
		WHERE $1::text = '' OR name ILIKE '%' || $1::text || '%'
		ORDER BY name
	`, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	defer rows.Close()

	materials := []material.Material{}
	for rows.Next() {
		var m material.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}
