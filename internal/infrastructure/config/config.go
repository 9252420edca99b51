package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Store backends accepted in STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, default=psychodash-dev-secret"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	SeedFile  string `env:"SEED_FILE"`

	Store      StoreConfig
	Summarizer SummarizerConfig
}

type StoreConfig struct {
	Backend string `env:"STORE_BACKEND, default=sqlite"`

	SQLitePath string `env:"SQLITE_PATH, default=psychodash.db"`

	RedisAddr     string `env:"REDIS_ADDR,   default=localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB,     default=0"`
	RedisPrefix   string `env:"REDIS_PREFIX, default=psychodash:"`

	MongoURI string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB,  default=psychodash"`

	PostgresDSN string `env:"POSTGRES_DSN, default=host=localhost user=postgres dbname=psychodash sslmode=disable"`
}

type SummarizerConfig struct {
	APIKey  string `env:"API_KEY"`
	BaseURL string `env:"SUMMARIZER_BASE_URL"`
	Model   string `env:"SUMMARIZER_MODEL"`
	Workers int    `env:"SUMMARY_WORKERS, default=4"`
}

// IsDevelopment reports whether the service runs with developer defaults
// (pretty logs, verbose errors).
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return FromLookuper(ctx, envconfig.OsLookuper(), &Config{})
}

// FromLookuper is Load with an explicit variable source.
func FromLookuper(ctx context.Context, l envconfig.Lookuper, cfg *Config) (*Config, error) {
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	switch cfg.Store.Backend {
	case BackendMemory, BackendSQLite, BackendRedis, BackendMongo, BackendPostgres:
	default:
		return nil, fmt.Errorf("config: unknown STORE_BACKEND %q", cfg.Store.Backend)
	}
	return cfg, nil
}
