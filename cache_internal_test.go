package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestClose_JoinsSweeper(t *testing.T) {
	c, err := NewFunc(func(ctx context.Context, key string) (int, error) {
		return len(key), nil
	}, time.Millisecond, time.Millisecond, WithLogger[string](zaptest.NewLogger(t)))
	require.NoError(t, err)
	require.True(t, c.sweeper.Running())

	require.Eventually(t, func() bool {
		return c.sweeper.Sweeps() > 0
	}, time.Second, time.Millisecond)

	require.NoError(t, c.Close())
	require.False(t, c.sweeper.Running())

	sweeps := c.sweeper.Sweeps()
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, sweeps, c.sweeper.Sweeps())
}

func TestFlightNames_UniquePerKeyAndReleased(t *testing.T) {
	type point struct{ X, Y int }
	f := newFlightNames[*point]()

	a, b := &point{1, 2}, &point{1, 2}

	na := f.acquire(a)
	nb := f.acquire(b)
	require.NotEqual(t, na, nb)
	require.Equal(t, na, f.acquire(a), "holders of one key share its name")

	f.release(a)
	require.Equal(t, 2, f.len())
	f.release(a)
	f.release(b)
	require.Zero(t, f.len())

	// Releasing an unknown key is harmless.
	f.release(a)
	require.Zero(t, f.len())
}

func TestApply_ReleasesFlightNames(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 1)

	c, err := NewFunc(func(ctx context.Context, key int) (int, error) {
		entered <- struct{}{}
		<-release
		return key, nil
	}, time.Minute, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.Apply(ctx, 1)
		done <- err
	}()

	<-entered
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	// The cancelled caller still holds the name while the computation runs.
	require.Equal(t, 1, c.flights.len())

	close(release)
	require.Eventually(t, func() bool {
		return c.flights.len() == 0
	}, time.Second, time.Millisecond)

	_, err = c.Apply(context.Background(), 2)
	require.NoError(t, err)
	require.Zero(t, c.flights.len())
}
