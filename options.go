package cache

import (
	"go.uber.org/zap"

	"github.com/krisalay/timed-cache/types"
)

type config[K comparable] struct {
	shards  int
	logger  *zap.Logger
	metrics types.Metrics
	clock   types.Clock
}

func defaultConfig[K comparable]() config[K] {
	return config[K]{
		logger:  zap.NewNop(),
		metrics: types.NoopMetrics{},
		clock:   types.RealClock{},
	}
}

// Option configures a Cache.
type Option[K comparable] func(*config[K])

// WithShards sets how many shards the store is split into.
// Non-positive values keep the default.
func WithShards[K comparable](n int) Option[K] {
	return func(c *config[K]) {
		if n > 0 {
			c.shards = n
		}
	}
}

// WithLogger sets the logger used by the cache and its sweeper.
func WithLogger[K comparable](l *zap.Logger) Option[K] {
	return func(c *config[K]) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the metrics sink. See Stats for a ready-made one.
func WithMetrics[K comparable](m types.Metrics) Option[K] {
	return func(c *config[K]) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithClock sets the clock used to stamp and age entries.
func WithClock[K comparable](clk types.Clock) Option[K] {
	return func(c *config[K]) {
		if clk != nil {
			c.clock = clk
		}
	}
}
