package ports

import "context"

// Repository is the CRUD shape shared by patients, sessions and financial records.
type Repository[T any] interface {
	// List returns every entity in storage order. Never nil.
	List(ctx context.Context) ([]T, error)
	// Get looks a single entity up by id.
	Get(ctx context.Context, id string) (T, bool, error)
	// Upsert replaces the entity with the same id in place or appends it.
	Upsert(ctx context.Context, entity T) error
	// DeleteByID removes the entity with id. Missing ids are a no-op.
	DeleteByID(ctx context.Context, id string) error
}
