package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
)

// Collection is the repository for one entity type, persisted as a single
// JSON array under one key.
//
// Every mutation is a read-modify-write of the whole array. Two callers
// mutating the same collection at the same time can overwrite each other;
// callers are expected to serialise writes themselves.
type Collection[T domain.Entity] struct {
	store *Store
	key   string
	log   zerolog.Logger
}

func NewCollection[T domain.Entity](store *Store, key string, log zerolog.Logger) *Collection[T] {
	return &Collection[T]{
		store: store,
		key:   key,
		log:   log.With().Str("collection", key).Logger(),
	}
}

func NewPatientRepository(store *Store, log zerolog.Logger) *Collection[domain.Patient] {
	return NewCollection[domain.Patient](store, KeyPatients, log)
}

func NewSessionRepository(store *Store, log zerolog.Logger) *Collection[domain.Session] {
	return NewCollection[domain.Session](store, KeySessions, log)
}

func NewFinancialRepository(store *Store, log zerolog.Logger) *Collection[domain.FinancialRecord] {
	return NewCollection[domain.FinancialRecord](store, KeyFinancials, log)
}

// Key returns the storage key of the collection.
func (c *Collection[T]) Key() string { return c.key }

// List returns all entities in insertion order. An absent collection is empty.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if _, err := c.store.Get(ctx, c.key, &items); err != nil {
		return nil, fmt.Errorf("list %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Get returns the entity with id, if any.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	items, err := c.List(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, it := range items {
		if it.EntityID() == id {
			return it, true, nil
		}
	}
	return zero, false, nil
}

// Upsert validates entity, then replaces the stored entity with the same id
// in place or appends it. Nothing is written when validation fails.
func (c *Collection[T]) Upsert(ctx context.Context, entity T) error {
	if err := entity.Validate(); err != nil {
		return fmt.Errorf("upsert %s: %w", c.key, err)
	}

	items, err := c.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range items {
		if items[i].EntityID() == entity.EntityID() {
			items[i] = entity
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, entity)
	}

	if err := c.store.Set(ctx, c.key, items); err != nil {
		return fmt.Errorf("upsert %s: %w", c.key, err)
	}

	c.log.Debug().Str("id", entity.EntityID()).Bool("replaced", replaced).Msg("entity saved")
	return nil
}

// DeleteByID removes the entity with id. An unknown id is a no-op and
// performs no write.
func (c *Collection[T]) DeleteByID(ctx context.Context, id string) error {
	items, err := c.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]T, 0, len(items))
	for _, it := range items {
		if it.EntityID() != id {
			kept = append(kept, it)
		}
	}

	if len(kept) == len(items) {
		return nil
	}

	if err := c.store.Set(ctx, c.key, kept); err != nil {
		return fmt.Errorf("delete %s: %w", c.key, err)
	}

	c.log.Debug().Str("id", id).Int("removed", len(items)-len(kept)).Msg("entity deleted")
	return nil
}
