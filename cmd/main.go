package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	cache "github.com/krisalay/timed-cache"
)

// ================= DELEGATE =================

// slowTrim stands in for an expensive pure function.
func slowTrim(ctx context.Context, s string) (string, error) {
	fmt.Printf("DELEGATE → trim %q\n", s)
	time.Sleep(100 * time.Millisecond)
	if s == "" {
		return "", errors.New("empty input")
	}
	return strings.TrimSpace(s), nil
}

// ================= MAIN =================

func main() {
	ctx := context.Background()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	fmt.Println("\n==================== SYSTEM BOOT ====================")

	const (
		ttl           = 1 * time.Second
		sweepInterval = 250 * time.Millisecond
	)

	fmt.Println("TTL            :", ttl)
	fmt.Println("SWEEP INTERVAL :", sweepInterval)

	stats := &cache.Stats{}

	c, err := cache.NewFunc(slowTrim, ttl, sweepInterval,
		cache.WithLogger[string](logger),
		cache.WithMetrics[string](stats),
		cache.WithShards[string](4),
	)
	if err != nil {
		logger.Fatal("create cache", zap.Error(err))
	}

	// ====================================================
	fmt.Println("\n==================== 1) CACHE MISS ====================")
	v, _ := c.Apply(ctx, "  test  ")
	fmt.Printf("CACHE  → APPLY %q = %q\n", "  test  ", v)

	peek, ok := c.Peek("  test  ")
	fmt.Printf("CACHE  → stored: %v, value: %q\n", ok, peek)

	// ====================================================
	fmt.Println("\n==================== 2) CACHE HIT ====================")
	v, _ = c.Apply(ctx, "  test  ")
	fmt.Printf("CACHE  → APPLY %q = %q\n", "  test  ", v)

	// ====================================================
	fmt.Println("\n==================== 3) SINGLEFLIGHT ====================")

	wg := sync.WaitGroup{}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			val, _ := c.Apply(ctx, "  shared  ")
			fmt.Printf("GOROUTINE-%d → APPLY = %q\n", id, val)
		}(i)
	}
	wg.Wait()

	// ====================================================
	fmt.Println("\n==================== 4) FAILURE IS NOT CACHED ====================")
	_, err = c.Apply(ctx, "")
	fmt.Println("CACHE  → APPLY \"\" error =", err)
	fmt.Println("CACHE  → entries =", c.Len())

	// ====================================================
	fmt.Println("\n==================== 5) TTL + SWEEP ====================")
	time.Sleep(ttl + 2*sweepInterval)

	_, ok = c.Peek("  test  ")
	fmt.Printf("CACHE  → stored after ttl: %v, entries = %d\n", ok, c.Len())

	// ====================================================
	snap := stats.Snapshot()
	fmt.Println("\n==================== METRICS ====================")
	fmt.Printf("HITS      : %d\n", snap.Hits)
	fmt.Printf("MISSES    : %d\n", snap.Misses)
	fmt.Printf("SHARED    : %d\n", snap.Shared)
	fmt.Printf("FAILURES  : %d\n", snap.Failures)
	fmt.Printf("EXPIRED   : %d\n", snap.Expired)

	// ====================================================
	fmt.Println("\n==================== SHUTDOWN ====================")
	c.Close()
	_, err = c.Apply(ctx, "  test  ")
	fmt.Println("SYSTEM → cache closed cleanly, apply after close:", err)
}
