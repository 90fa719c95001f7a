package material

import "context"

type MaterialRepository interface {
	Create(ctx context.Context, name string) (Material, error)
	// Upsert returns the material with the given name, creating it if absent.
	Upsert(ctx context.Context, name string) (Material, error)
	List(ctx context.Context, search string) ([]Material, error)
}
