package sweeper

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// countingTarget records every Sweep call.
type countingTarget struct {
	calls   atomic.Int64
	delay   time.Duration
	mu      sync.Mutex
	entered chan struct{}
}

func (c *countingTarget) Sweep(time.Time) int {
	c.mu.Lock()
	if c.entered != nil {
		close(c.entered)
		c.entered = nil
	}
	c.mu.Unlock()

	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	c.calls.Add(1)
	return 1
}

func TestSweeper_TicksWhileRunning(t *testing.T) {
	target := &countingTarget{}
	s := New(target, 5*time.Millisecond, nil, zaptest.NewLogger(t))

	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool {
		return target.calls.Load() >= 3
	}, time.Second, time.Millisecond)
	require.GreaterOrEqual(t, s.Sweeps(), uint64(3))
}

func TestSweeper_NoSweepsAfterStop(t *testing.T) {
	target := &countingTarget{}
	s := New(target, 2*time.Millisecond, nil, zaptest.NewLogger(t))

	s.Start()
	require.Eventually(t, func() bool {
		return target.calls.Load() >= 1
	}, time.Second, time.Millisecond)

	s.Stop()
	after := target.calls.Load()

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, after, target.calls.Load())
	require.False(t, s.Running())
}

func TestSweeper_StopWaitsForInProgressSweep(t *testing.T) {
	entered := make(chan struct{})
	target := &countingTarget{delay: 30 * time.Millisecond, entered: entered}
	s := New(target, time.Millisecond, nil, zaptest.NewLogger(t))

	s.Start()
	<-entered

	s.Stop()
	// The sweep that was running when Stop was called has completed.
	require.GreaterOrEqual(t, target.calls.Load(), int64(1))
}

func TestSweeper_StartStopIdempotent(t *testing.T) {
	target := &countingTarget{}
	s := New(target, time.Hour, nil, nil)

	require.False(t, s.Running())

	s.Stop()
	require.False(t, s.Running())

	s.Start()
	s.Start()
	require.True(t, s.Running())

	s.Stop()
	s.Stop()
	require.False(t, s.Running())
	require.Zero(t, target.calls.Load())
}

func TestSweeper_Restart(t *testing.T) {
	target := &countingTarget{}
	s := New(target, 2*time.Millisecond, nil, zaptest.NewLogger(t))

	s.Start()
	s.Stop()
	before := target.calls.Load()

	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool {
		return target.calls.Load() > before
	}, time.Second, time.Millisecond)
}
