// Package sweeper runs periodic, cancellable background eviction.
package sweeper

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/krisalay/timed-cache/types"
)

// Target is whatever the sweeper cleans. Sweep removes entries that are stale at
// now and returns how many it removed.
type Target interface {
	Sweep(now time.Time) int
}

/*
Sweeper calls Target.Sweep once per interval from a single goroutine it owns.

States: Stopped -> Running -> Stopped. Start and Stop are idempotent, and a stopped
sweeper can be started again. Between ticks the goroutine is parked on a ticker,
never spinning.
*/
type Sweeper struct {
	target   Target
	interval time.Duration
	clock    types.Clock
	logger   *zap.Logger

	// mu guards the state transition fields below.
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	sweeps atomic.Uint64
}

// New creates a stopped sweeper. A nil clock means the wall clock and a nil
// logger means no logging.
func New(target Target, interval time.Duration, clock types.Clock, logger *zap.Logger) *Sweeper {
	if clock == nil {
		clock = types.RealClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{
		target:   target,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}
}

// Start launches the sweep goroutine. It does nothing if the sweeper is already running.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("sweeper started", zap.Duration("interval", s.interval))
}

/*
Stop cancels the pending wait and blocks until the goroutine has exited.
A sweep that is already in progress is allowed to finish; no Sweep call
happens after Stop returns. It does nothing if the sweeper is not running.
*/
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.wg.Wait()

	s.cancel = nil
	s.running = false

	s.logger.Info("sweeper stopped", zap.Uint64("sweeps", s.sweeps.Load()))
}

// Running reports whether the sweep goroutine is active.
func (s *Sweeper) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Sweeps returns how many passes have completed since the sweeper was created.
func (s *Sweeper) Sweeps() uint64 {
	return s.sweeps.Load()
}

func (s *Sweeper) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Ticker and cancellation can both be ready; cancellation wins.
			if ctx.Err() != nil {
				return
			}
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	now := s.clock.Now()
	removed := s.target.Sweep(now)
	s.sweeps.Add(1)

	if removed > 0 {
		s.logger.Debug("sweep removed expired entries", zap.Int("removed", removed))
	}
}

// TargetFunc adapts a plain function to the Target interface.
type TargetFunc func(now time.Time) int

// Sweep calls f(now).
func (f TargetFunc) Sweep(now time.Time) int {
	return f(now)
}
