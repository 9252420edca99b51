package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
)

// Keys of the persisted blobs.
const (
	KeyCurrentUser = "current-user"
	KeyPatients    = "patients"
	KeySessions    = "sessions"
	KeyFinancials  = "financials"
)

// Store is the JSON layer over a raw key-value backend. Every key holds one
// complete JSON document.
type Store struct {
	kv ports.KVStore
}

func NewStore(kv ports.KVStore) *Store {
	return &Store{kv: kv}
}

// Get decodes the value under key into v. It reports false when the key is
// absent. A value that is not valid JSON, or does not fit v, yields a
// *domain.CorruptDataError; v must then be discarded.
func (s *Store) Get(ctx context.Context, key string, v any) (bool, error) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("store get %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if !json.Valid(raw) {
		return false, &domain.CorruptDataError{Key: key, Err: errors.New("value is not valid JSON")}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, &domain.CorruptDataError{Key: key, Err: err}
	}
	return true, nil
}

// Exists reports whether key holds a value, without decoding it.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("store get %s: %w", key, err)
	}
	return found, nil
}

// Set encodes v and writes it under key in a single backend write.
func (s *Store) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("store set %s: %w", key, err)
	}
	return nil
}

// Remove deletes key.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("store remove %s: %w", key, err)
	}
	return nil
}

// Ping checks the backend.
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}
