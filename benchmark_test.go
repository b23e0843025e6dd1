package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	cache "github.com/krisalay/timed-cache"
)

func newBenchmarkCache(b *testing.B) *cache.Cache[string, int] {
	c, err := cache.NewFunc(func(ctx context.Context, key string) (int, error) {
		return len(key), nil
	}, time.Minute, 10*time.Second, cache.WithShards[string](8))
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { c.Close() })
	return c
}

//
// ================= SINGLE THREAD BENCH =================
//

func BenchmarkCacheApplyHit(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b)

	c.Apply(ctx, "key")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Apply(ctx, "key")
	}
}

func BenchmarkCacheApplyMiss(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Apply(ctx, fmt.Sprintf("miss-%d", i))
	}
}

//
// ================= PARALLEL BENCH =================
//

func BenchmarkCacheParallelApply(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b)

	for i := 0; i < 1000; i++ {
		c.Apply(ctx, fmt.Sprintf("key-%d", i))
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Apply(ctx, "key-42")
		}
	})
}

//
// ================= HIGH CONCURRENCY TEST =================
//

func BenchmarkCacheHighConcurrency(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b)

	keys := make([]string, 10000)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}

	b.ResetTimer()

	var g errgroup.Group
	for i := 0; i < 100; i++ {
		g.Go(func() error {
			for j := 0; j < b.N/100; j++ {
				if _, err := c.Apply(ctx, keys[j%len(keys)]); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		b.Fatal(err)
	}
}
