package client

import "context"

type ClientRepository interface {
	Create(ctx context.Context, name string) (Client, error)
	// Upsert returns the client with the given name, creating it if absent.
	Upsert(ctx context.Context, name string) (Client, error)
	List(ctx context.Context, search string) ([]Client, error)
}
