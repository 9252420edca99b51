package ports

import "context"

// KVStore is the raw persistence backend: whole values addressed by key.
// Implementations must not interpret the bytes they hold.
type KVStore interface {
	// Get returns the stored bytes and true, or nil and false when key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the value under key in a single write.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}
