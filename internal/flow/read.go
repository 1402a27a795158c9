package flow

import (
	"context"
	"time"

	"islandtracker/internal/gateway"

	log "github.com/sirupsen/logrus"
)

// Read serves key from the cache or the network:
//   - offline: whatever is cached, expired or not, and never a network call;
//   - online, not forced, not expired: the cached value;
//   - otherwise: a fetch of path, written through under key.
//
// A failed fetch is returned as is; an older cached value is never substituted.
func Read[T any](ctx context.Context, s *Service, key string, path func(ctx context.Context) (string, error), ttl time.Duration, force bool) (Result[T], error) {
	logger := log.WithFields(log.Fields{"key": key, "force": force})

	b, expired, ok := s.cache.Peek(ctx, key)
	if !s.connectivity.Online() {
		if !ok {
			logger.Debug("offline, nothing cached")
			return Result[T]{Source: SourceNone}, nil
		}
		logger.WithField("stale", expired).Debug("offline, serving cache")
		return fromCache[T](key, b, expired)
	}
	if ok && !force && !expired {
		logger.Debug("cache hit")
		return fromCache[T](key, b, false)
	}

	p, err := path(ctx)
	if err != nil {
		return Result[T]{}, err
	}
	logger.WithField("cached", ok).Debug("fetching")
	v, err := gateway.GetFor[T](ctx, s.gw, p, key, ttl)
	if err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Value: v, Source: SourceNetwork}, nil
}

func fromCache[T any](key string, b []byte, stale bool) (Result[T], error) {
	v, err := gateway.Decode[T](key, b)
	if err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Value: v, Source: SourceCache, Stale: stale}, nil
}
