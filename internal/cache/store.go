package cache

import (
	"context"
	"sync"
	"time"

	"islandtracker/internal/ports"
	"islandtracker/internal/types"

	json "github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

// Store is the expiring key/value cache shared by the whole process.
// Every call into the backend runs under one exclusive lock; the lock is never held
// while the caller talks to the network. Staleness is judged at read time only.
type Store struct {
	mu       sync.Mutex
	backend  ports.CacheBackend
	clock    clockwork.Clock
	compress bool
}

type Option func(*Store)

// WithClock replaces the wall clock used to stamp and judge expiry.
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithCompression toggles zstd compression of stored values.
func WithCompression(on bool) Option {
	return func(s *Store) { s.compress = on }
}

func NewStore(backend ports.CacheBackend, opts ...Option) *Store {
	s := &Store{backend: backend, clock: clockwork.NewRealClock(), compress: true}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Get returns the stored value. Absent, unreadable and corrupt entries all read as absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	v, _, ok := s.Peek(ctx, key)
	return v, ok
}

// Peek returns the stored value together with its expiry state, judged from a single
// read of the medium. ok is false when Get would report the entry absent.
func (s *Store) Peek(ctx context.Context, key string) (value []byte, expired bool, ok bool) {
	e := s.load(ctx, key)
	if e == nil {
		return nil, true, false
	}
	expired = e.Expired(s.clock.Now())
	if !e.Compressed {
		return e.Value, expired, true
	}
	v, err := DecodeValue(e.Value)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("corrupt cache entry")
		return nil, true, false
	}
	return v, expired, true
}

// Put stores value under key until ttl elapses.
func (s *Store) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	e := types.CacheEntry{
		Key:       key,
		Value:     value,
		ExpiresAt: s.clock.Now().Add(ttl),
	}
	if s.compress {
		e.Value = EncodeValue(value)
		e.Compressed = true
	}
	s.mu.Lock()
	err := s.backend.Save(ctx, e)
	s.mu.Unlock()
	if err != nil {
		return types.Err(types.ErrDataStoreAccess, err, "save %s", key)
	}
	log.WithFields(log.Fields{"key": key, "ttl": ttl}).Debug("cache put")
	return nil
}

// IsExpired reports whether key must be refreshed. A missing entry is expired.
func (s *Store) IsExpired(ctx context.Context, key string) bool {
	e := s.load(ctx, key)
	if e == nil {
		return true
	}
	return e.Expired(s.clock.Now())
}

// Clear drops every cache entry.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.ClearAll(ctx)
}

func (s *Store) load(ctx context.Context, key string) *types.CacheEntry {
	s.mu.Lock()
	e, err := s.backend.Load(ctx, key)
	s.mu.Unlock()
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("cache read failed")
		return nil
	}
	return e
}

// GetJSON decodes the value under key into T. A value that does not decode reads as absent.
func GetJSON[T any](ctx context.Context, s *Store, key string) (T, bool) {
	var out T
	b, ok := s.Get(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(b, &out); err != nil {
		log.WithError(err).WithField("key", key).Warn("cached value does not decode")
		var zero T
		return zero, false
	}
	return out, true
}

// PutJSON serializes v and stores it under key.
func PutJSON[T any](ctx context.Context, s *Store, key string, v T, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(ctx, key, b, ttl)
}
