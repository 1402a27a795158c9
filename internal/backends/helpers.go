package backends

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"

	"islandtracker/internal/backends/ddb"
	"islandtracker/internal/backends/memory"
	redisbackend "islandtracker/internal/backends/redis"
	"islandtracker/internal/backends/sqlite"
	"islandtracker/internal/config"
	"islandtracker/internal/ports"
	"islandtracker/internal/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// LocalStoreFromConfig opens the cache medium named by CACHE_BACKEND.
// Supported backends are "sqlite" (default), "redis", "ddb" and "memory".
func LocalStoreFromConfig(ctx context.Context, cfg config.CacheConfig) (store ports.LocalStore, err error) {
	switch cfg.Backend {
	case config.BackendRedis:
		var redisClient *redis.Client
		redisClient, err = redisClientFromConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store = redisbackend.NewDataStore(redisClient)

	case config.BackendDDB:
		var ddbClient *dynamodb.Client
		ddbClient, err = ddbClientFromConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store, err = ddb.NewDataStore(ctx, cfg.DDBTable, ddbClient)
		if err != nil {
			return nil, err
		}

	case config.BackendMemory:
		store = memory.NewStore()

	case config.BackendSQLite, "":
		store, err = sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}

	default:
		return nil, types.Err(types.ErrInvalidBackend, nil, "unknown cache backend %q", cfg.Backend)
	}
	log.WithField("backend", cfg.Backend).Debug("cache backend ready")
	return store, nil
}

// ddbClientFromConfig creates a DynamoDB client; DDB_ENDPOINT points it at a local mock.
func ddbClientFromConfig(ctx context.Context, cfg config.CacheConfig) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	ddbClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DDBEndpoint != "" {
			// This is used for testing only locally
			o.BaseEndpoint = aws.String(cfg.DDBEndpoint)
			o.Region = cfg.AWSRegion
			o.Credentials = credentials.NewStaticCredentialsProvider("x", "x", "")
		}
	})
	return ddbClient, nil
}

// redisClientFromConfig creates a Redis client and verifies it answers.
func redisClientFromConfig(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	var tlsConfig *tls.Config
	if cfg.RedisTLS {
		tlsConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: cfg.RedisHost,
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:      net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Username:  cfg.RedisUser,
		Password:  cfg.RedisPass,
		DB:        cfg.RedisDBNum,
		TLSConfig: tlsConfig,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return redisClient, nil
}
