// Package cache memoizes a function behind a time-to-live cache.
//
// A Cache wraps a types.Loader. The first Apply for a key runs the loader and
// stores the result; later calls within the TTL return the stored value.
// Concurrent misses on the same key share a single loader call, failed calls
// are never stored, and a background sweeper reclaims expired entries.
package cache

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/krisalay/timed-cache/api"
	"github.com/krisalay/timed-cache/engine"
	"github.com/krisalay/timed-cache/expiration"
	"github.com/krisalay/timed-cache/shard"
	"github.com/krisalay/timed-cache/sweeper"
	"github.com/krisalay/timed-cache/types"
)

var _ api.Memoizer[string, any] = (*Cache[string, any])(nil)

/*
Cache is the memoizing cache.
This struct is the orchestrator that connects:
- the sharded store (where entries live)
- the engine (TTL rule, clock, loader, metrics, logging)
- single-flight coordination of misses
- the sweeper goroutine it owns
*/
type Cache[K comparable, V any] struct {
	store   *shard.Store[K, V]
	engine  *engine.CacheEngine[K, V]
	sweeper *sweeper.Sweeper

	// sf makes sure concurrent misses for one key run the loader once.
	// Flight names come from flights, never from printing the key.
	sf      singleflight.Group
	flights *flightNames[K]

	ttl           time.Duration
	sweepInterval time.Duration

	closed atomic.Bool
}

/*
New builds a cache around loader and starts its sweeper.

ttl is how long a computed value may be served. sweepInterval is how often expired
entries are reclaimed; it is independent of ttl and only bounds memory, never
staleness. A nil loader or a non-positive duration yields an error wrapping
ErrInvalidConfiguration.
*/
func New[K comparable, V any](
	loader types.Loader[K, V],
	ttl time.Duration,
	sweepInterval time.Duration,
	opts ...Option[K],
) (*Cache[K, V], error) {

	if isNilLoader(loader) {
		return nil, fmt.Errorf("%w: loader is required", ErrInvalidConfiguration)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: ttl must be positive, got %s", ErrInvalidConfiguration, ttl)
	}
	if sweepInterval <= 0 {
		return nil, fmt.Errorf("%w: sweep interval must be positive, got %s", ErrInvalidConfiguration, sweepInterval)
	}

	cfg := defaultConfig[K]()
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger.With(zap.Duration("ttl", ttl))

	c := &Cache[K, V]{
		store: shard.NewStore[K, V](cfg.shards),
		engine: engine.NewCacheEngine(
			expiration.AfterWrite{TTL: ttl},
			loader,
			cfg.clock,
			cfg.metrics,
			logger,
		),
		flights:       newFlightNames[K](),
		ttl:           ttl,
		sweepInterval: sweepInterval,
	}

	c.sweeper = sweeper.New(sweeper.TargetFunc(c.sweep), sweepInterval, cfg.clock, logger)
	c.sweeper.Start()

	return c, nil
}

// NewFunc is New for a plain function.
func NewFunc[K comparable, V any](
	fn func(ctx context.Context, key K) (V, error),
	ttl time.Duration,
	sweepInterval time.Duration,
	opts ...Option[K],
) (*Cache[K, V], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: loader is required", ErrInvalidConfiguration)
	}
	return New(types.LoaderFunc[K, V](fn), ttl, sweepInterval, opts...)
}

func isNilLoader[K comparable, V any](l types.Loader[K, V]) bool {
	if l == nil {
		return true
	}
	f, ok := l.(types.LoaderFunc[K, V])
	return ok && f == nil
}

/*
Apply returns the value for key, computing it on a miss.

- Hit: the stored entry is younger than the TTL right now. Returned as is.
- Miss: one loader call runs for the key no matter how many callers ask at once.
  Its value is stored before any caller gets it back. Its error is returned
  unchanged to every caller that waited on it and is not stored, so the next
  Apply tries again.

If ctx ends while waiting, Apply returns ctx.Err(); the computation keeps running
for the other callers and still stores its result. After Close, Apply returns ErrClosed.
*/
func (c *Cache[K, V]) Apply(ctx context.Context, key K) (V, error) {
	var zero V

	if c.closed.Load() {
		return zero, ErrClosed
	}

	if v, ok := c.lookup(key); ok {
		c.engine.Metrics.Hit()
		return v, nil
	}

	c.engine.Metrics.Miss()

	ch := c.sf.DoChan(c.flights.acquire(key), func() (any, error) {
		return c.compute(ctx, key)
	})

	select {
	case <-ctx.Done():
		// Keep the hold until the flight delivers so the key cannot be
		// given a second name while its computation is still running.
		go func() {
			<-ch
			c.flights.release(key)
		}()
		return zero, ctx.Err()
	case res := <-ch:
		c.flights.release(key)
		if res.Shared {
			c.engine.Metrics.Shared()
		}
		if res.Err != nil {
			return zero, res.Err
		}
		v, _ := res.Val.(V)
		return v, nil
	}
}

/*
compute runs inside the single flight for key.

The store is checked again first: a caller that missed just before another
flight published its value would otherwise start a second computation.
The loader gets a context that keeps the caller's values but not its
cancellation, because other callers may be waiting on the same result.

A panicking loader is turned into an error wrapping ErrLoaderPanic for every
waiter. singleflight.DoChan would otherwise re-panic on a goroutine no caller
can recover.
*/
func (c *Cache[K, V]) compute(ctx context.Context, key K) (_ any, err error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}

	defer func() {
		if r := recover(); r != nil {
			c.engine.Metrics.Failure()
			c.engine.Logger.Error("loader panicked",
				zap.Any("key", key),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			err = fmt.Errorf("%w: %v", ErrLoaderPanic, r)
		}
	}()

	v, err := c.engine.Load(context.WithoutCancel(ctx), key)
	if err != nil {
		return nil, err
	}

	c.store.Put(key, v, c.engine.Now())
	return v, nil
}

// lookup returns the stored value for key if its entry has not expired.
// It never mutates the store.
func (c *Cache[K, V]) lookup(key K) (V, bool) {
	ent, ok := c.store.Get(key)
	if !ok || c.engine.IsExpired(ent) {
		var zero V
		return zero, false
	}
	return ent.Value, true
}

func (c *Cache[K, V]) sweep(now time.Time) int {
	removed := c.store.EvictExpired(now, c.engine.Expiration)
	for range removed {
		c.engine.Metrics.Expire()
	}
	return removed
}

// Peek returns the stored value for key without computing it.
// Expired entries are reported as absent.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	return c.lookup(key)
}

// Invalidate removes the entry for key and reports whether there was one.
func (c *Cache[K, V]) Invalidate(key K) bool {
	return c.store.Remove(key)
}

// Purge removes every entry.
func (c *Cache[K, V]) Purge() {
	c.store.Clear()
}

// Len returns the number of stored entries, including expired ones the
// sweeper has not reclaimed yet.
func (c *Cache[K, V]) Len() int {
	return c.store.Len()
}

// TTL returns the configured time-to-live.
func (c *Cache[K, V]) TTL() time.Duration {
	return c.ttl
}

// SweepInterval returns the configured time between sweeps.
func (c *Cache[K, V]) SweepInterval() time.Duration {
	return c.sweepInterval
}

/*
Close stops the sweeper and waits for it to exit.
After Close, Apply returns ErrClosed. Stored entries are left as they are and
are no longer swept; Peek, Len, Invalidate and Purge keep working.
Close is safe to call multiple times and from multiple goroutines.
*/
func (c *Cache[K, V]) Close() error {
	first := c.closed.CompareAndSwap(false, true)

	c.sweeper.Stop()

	if first {
		c.engine.Logger.Info("cache closed",
			zap.Int("entries", c.store.Len()),
			zap.Uint64("sweeps", c.sweeper.Sweeps()),
		)
	}
	return nil
}
