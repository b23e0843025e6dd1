package cache_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	cache "github.com/krisalay/timed-cache"
)

func Example() {
	calls := 0
	trim, err := cache.NewFunc(func(ctx context.Context, s string) (string, error) {
		calls++
		return strings.TrimSpace(s), nil
	}, time.Minute, time.Second)
	if err != nil {
		panic(err)
	}
	defer trim.Close()

	ctx := context.Background()
	first, _ := trim.Apply(ctx, "  test  ")
	second, _ := trim.Apply(ctx, "  test  ")

	fmt.Printf("%q %q calls=%d\n", first, second, calls)
	// Output: "test" "test" calls=1
}

func ExampleCache_Close() {
	c, _ := cache.NewFunc(func(ctx context.Context, n int) (int, error) {
		return n * n, nil
	}, time.Minute, time.Second)

	c.Close()

	_, err := c.Apply(context.Background(), 3)
	fmt.Println(err)
	// Output: cache: closed
}
