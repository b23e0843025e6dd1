package main

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	cache "github.com/krisalay/timed-cache"
)

// ================= BENCHMARK =================

func main() {
	ctx := context.Background()

	const (
		shards        = 8
		keys          = 100000
		goroutines    = 200
		opsPerG       = 5000
		ttl           = 2 * time.Second
		sweepInterval = 500 * time.Millisecond
		loadCost      = 50 * time.Microsecond
	)

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	fmt.Println("\n================ CACHE LOAD BENCHMARK =================")
	fmt.Println("CONFIG")
	fmt.Println("---------------------------------")
	fmt.Println("Shards        :", shards)
	fmt.Println("Keys          :", keys)
	fmt.Println("Goroutines    :", goroutines)
	fmt.Println("Ops/Goroutine :", opsPerG)
	fmt.Println("TTL           :", ttl)
	fmt.Println("Sweep every   :", sweepInterval)
	fmt.Println("---------------------------------")

	var loads atomic.Int64
	stats := &cache.Stats{}

	c, err := cache.NewFunc(func(ctx context.Context, key int) (int, error) {
		loads.Add(1)
		time.Sleep(loadCost)
		return key * 2, nil
	}, ttl, sweepInterval,
		cache.WithShards[int](shards),
		cache.WithMetrics[int](stats),
		cache.WithLogger[int](logger),
	)
	if err != nil {
		logger.Fatal("create cache", zap.Error(err))
	}
	defer c.Close()

	fmt.Println("Running concurrency benchmark...")

	start := time.Now()

	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			for j := 0; j < opsPerG; j++ {
				key := (i*7919 + j) % keys
				if _, err := c.Apply(ctx, key); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal("benchmark failed", zap.Error(err))
	}

	duration := time.Since(start)
	totalOps := goroutines * opsPerG
	snap := stats.Snapshot()

	fmt.Println("\n================ RESULTS =================")
	fmt.Printf("Total Operations : %d\n", totalOps)
	fmt.Printf("Total Time       : %v\n", duration)
	fmt.Printf("Throughput       : %.2f ops/sec\n", float64(totalOps)/duration.Seconds())
	fmt.Printf("Loader Calls     : %d\n", loads.Load())
	fmt.Printf("Hit Rate         : %.2f%%\n", snap.HitRate()*100)
	fmt.Printf("Shared Results   : %d\n", snap.Shared)
	fmt.Printf("Entries          : %d\n", c.Len())
	fmt.Println("=========================================")
}
