// Package db selects and opens the configured KVStore backend.
package db

import (
	"context"
	"fmt"

	"github.com/psychodash/practice-dashboard/internal/core/ports"
	"github.com/psychodash/practice-dashboard/internal/infrastructure/config"
	"github.com/psychodash/practice-dashboard/internal/infrastructure/db/memory"
	"github.com/psychodash/practice-dashboard/internal/infrastructure/db/mongo"
	"github.com/psychodash/practice-dashboard/internal/infrastructure/db/postgres"
	"github.com/psychodash/practice-dashboard/internal/infrastructure/db/redis"
	"github.com/psychodash/practice-dashboard/internal/infrastructure/db/sqlite"
)

// Open connects to the backend named in cfg.Backend. The caller owns the
// returned store and must Close it.
func Open(ctx context.Context, cfg config.StoreConfig) (ports.KVStore, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.NewKVStore(), nil
	case config.BackendSQLite, "":
		return sqlite.Open(ctx, cfg.SQLitePath)
	case config.BackendRedis:
		return redis.Open(ctx, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	case config.BackendMongo:
		return mongo.Open(ctx, mongo.Config{URI: cfg.MongoURI, Database: cfg.MongoDB})
	case config.BackendPostgres:
		return postgres.Open(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("db: unsupported backend %q", cfg.Backend)
	}
}
