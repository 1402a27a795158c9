package ports

import (
	"context"
	"islandtracker/internal/types"
)

// CacheBackend is the persistent medium behind the cache store. It is not assumed
// safe for concurrent use; the cache store serializes every call.
// Implementations MUST NOT evict or expire entries on their own: expired entries are
// still served while offline.
type CacheBackend interface {
	// Load returns the entry stored under key.
	// If no entry exists, (nil,nil) MUST be returned.
	Load(ctx context.Context, key string) (*types.CacheEntry, error)

	// Save creates or replaces the entry under entry.Key.
	Save(ctx context.Context, entry types.CacheEntry) error

	// ClearAll purges all cache entries, leaving settings untouched. Used in tests only.
	ClearAll(ctx context.Context) error
}

// LocalStore is what every backend provides: cache entries plus device settings.
type LocalStore interface {
	CacheBackend
	SettingsStore
	Close() error
}
