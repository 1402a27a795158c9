package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"islandtracker/internal/types"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	cacheKeyNameTemplate = "_islandtracker_cache_%s"
	settingsKeyName      = "_islandtracker_settings"
	fieldHasRegistered   = "has_registered"
)

// DataStore keeps one hash per cache entry. Keys carry no Redis TTL: expired entries
// stay readable for offline use.
type DataStore struct {
	cli *redis.Client
}

func NewDataStore(cli *redis.Client) *DataStore {
	return &DataStore{cli: cli}
}

// Load returns the entry, or (nil,nil) when the key does not exist.
func (s *DataStore) Load(ctx context.Context, key string) (*types.CacheEntry, error) {
	out := s.cli.HGetAll(ctx, getCacheKeyName(key))
	if out.Err() != nil {
		if errors.Is(out.Err(), redis.Nil) {
			return nil, nil
		}
		return nil, out.Err()
	}
	m := out.Val()
	if len(m) == 0 {
		return nil, nil
	}
	expiresAt, err := strconv.ParseInt(m["expires_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid expires_at: %w", err)
	}
	compressed, err := strconv.ParseBool(m["compressed"])
	if err != nil {
		return nil, fmt.Errorf("invalid compressed: %w", err)
	}
	return &types.CacheEntry{
		Key:        key,
		Value:      []byte(m["value"]),
		Compressed: compressed,
		ExpiresAt:  time.UnixMilli(expiresAt).UTC(),
	}, nil
}

func (s *DataStore) Save(ctx context.Context, entry types.CacheEntry) error {
	out := s.cli.HSet(ctx, getCacheKeyName(entry.Key), map[string]any{
		"value":      entry.Value,
		"compressed": strconv.FormatBool(entry.Compressed),
		"expires_at": entry.ExpiresAt.UTC().UnixMilli(),
	})
	return out.Err()
}

func (s *DataStore) ClearAll(ctx context.Context) error {
	out := s.cli.Keys(ctx, getCacheKeyName("*"))
	if out.Err() != nil {
		return out.Err()
	}
	keys := out.Val()
	if len(keys) == 0 {
		return nil
	}
	outN := s.cli.Del(ctx, keys...)
	return outN.Err()
}

func (s *DataStore) HasRegistered(ctx context.Context) (bool, error) {
	out := s.cli.HGet(ctx, settingsKeyName, fieldHasRegistered)
	if out.Err() != nil {
		if errors.Is(out.Err(), redis.Nil) {
			return false, nil
		}
		return false, out.Err()
	}
	b, err := strconv.ParseBool(out.Val())
	if err != nil {
		log.WithError(err).Warn("invalid registration flag in redis")
		return false, fmt.Errorf("invalid %s: %w", fieldHasRegistered, err)
	}
	return b, nil
}

func (s *DataStore) SetRegistered(ctx context.Context) error {
	return s.cli.HSet(ctx, settingsKeyName, fieldHasRegistered, strconv.FormatBool(true)).Err()
}

func (s *DataStore) Close() error {
	return s.cli.Close()
}

func getCacheKeyName(key string) string {
	return fmt.Sprintf(cacheKeyNameTemplate, key)
}
