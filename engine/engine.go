package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/krisalay/timed-cache/expiration"
	"github.com/krisalay/timed-cache/types"
)

/*
CacheEngine is the "brain" of the cache system.
It is responsible for the "behavior" of the cache, NOT storage.
This acts as the policy layer.

It decides:
- When an entry is too old to serve
- What time it is
- How a missing value is computed
- How events are recorded (metrics and logs)

It does NOT:
- Store data
- Handle sharding
- Handle locking
- Coordinate concurrent misses
*/
type CacheEngine[K comparable, V any] struct {

	// Expiration judges staleness for both the lookup path and the sweeper.
	Expiration expiration.Strategy

	// Loader is the wrapped computation the cache memoizes.
	Loader types.Loader[K, V]

	// Clock stamps new entries and ages existing ones.
	Clock types.Clock

	// Metrics is how we keep track of what the cache is doing.
	Metrics types.Metrics

	// Logger receives structured events.
	Logger *zap.Logger
}

/*
NewCacheEngine creates a CacheEngine.
Nil clock, metrics and logger are replaced with working defaults so the rest of
the code never has to check them.
*/
func NewCacheEngine[K comparable, V any](
	exp expiration.Strategy,
	loader types.Loader[K, V],
	clock types.Clock,
	metrics types.Metrics,
	logger *zap.Logger,
) *CacheEngine[K, V] {

	if clock == nil {
		clock = types.RealClock{}
	}
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CacheEngine[K, V]{
		Expiration: exp,
		Loader:     loader,
		Clock:      clock,
		Metrics:    metrics,
		Logger:     logger,
	}
}

// Now returns the engine's current time.
func (e *CacheEngine[K, V]) Now() time.Time {
	return e.Clock.Now()
}

// IsExpired checks whether ent is stale at the current time.
func (e *CacheEngine[K, V]) IsExpired(ent *types.CacheEntry[V]) bool {
	return e.Expiration.IsExpired(ent.InsertedAt, e.Clock.Now())
}

/*
Load runs the wrapped computation for key.
The error, if any, is returned exactly as the loader produced it.
*/
func (e *CacheEngine[K, V]) Load(ctx context.Context, key K) (V, error) {
	v, err := e.Loader.Load(ctx, key)
	if err != nil {
		e.Metrics.Failure()
		e.Logger.Debug("loader failed", zap.Any("key", key), zap.Error(err))
	}
	return v, err
}
