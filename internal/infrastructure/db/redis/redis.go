// Package redis keeps the collection blobs as plain string values.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Config selects the database and the key namespace of the store.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key, e.g. "psychodash:".
	Prefix  string
	Timeout time.Duration
}

// Open dials the server and returns a store only once a ping succeeds.
func Open(ctx context.Context, cfg Config) (*KVStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	store := NewKVStore(client, cfg.Prefix)
	if cfg.Timeout > 0 {
		store.timeout = cfg.Timeout
	}
	if err := store.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return store, nil
}
