package config

import (
	"context"
	"fmt"
	"time"

	"islandtracker/internal/types"

	"github.com/sethvargo/go-envconfig"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendDDB    = "ddb"
	BackendMemory = "memory"
)

type Config struct {
	BaseURL  string `env:"BASE_URL"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// Offline forces the connectivity signal to "no network".
	Offline bool `env:"OFFLINE, default=false"`
	// HTTPTimeout of 0 leaves calls unbounded.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT, default=0s"`

	Cache    CacheConfig
	Identity IdentityConfig
	Codes    types.AccessCodes
	TTL      types.TTLs
}

type CacheConfig struct {
	Backend  string `env:"CACHE_BACKEND, default=sqlite"`
	Compress bool   `env:"CACHE_COMPRESS, default=true"`

	SQLitePath string `env:"SQLITE_PATH, default=islandtracker.db"`

	RedisHost  string `env:"REDIS_HOST, default=localhost"`
	RedisPort  string `env:"REDIS_PORT, default=6379"`
	RedisUser  string `env:"REDIS_USER"`
	RedisPass  string `env:"REDIS_PASS"`
	RedisTLS   bool   `env:"REDIS_SSL, default=false"`
	RedisDBNum int    `env:"REDIS_DB_NUM, default=0"`

	DDBEndpoint string `env:"DDB_ENDPOINT"`
	DDBTable    string `env:"DDB_TABLE, default=islandtracker_cache"`
	AWSRegion   string `env:"AWS_REGION, default=us-east-1"`
}

// IdentityConfig stands in for device secure storage when running from a shell.
type IdentityConfig struct {
	PublicKey  string `env:"IDENTITY_PUBLIC_KEY"`
	PrivateKey string `env:"IDENTITY_PRIVATE_KEY"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.TTL.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	switch cfg.Cache.Backend {
	case BackendSQLite, BackendRedis, BackendDDB, BackendMemory:
	default:
		return Config{}, types.Err(types.ErrInvalidBackend, nil, "unknown cache backend %q", cfg.Cache.Backend)
	}
	return cfg, nil
}
