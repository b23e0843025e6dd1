package types

import "context"

// Loader is the contract between the cache and the computation it memoizes.
type Loader[K comparable, V any] interface {

	/*
		Load is called when the cache misses. The key was not found in memory (or its
		entry is older than the TTL), so the cache asks the Loader to compute it.
		1. Cache checks memory → key not found
		2. Cache calls Load(key), at most once per key at a time
		3. Cache stores the result in memory (only if err == nil)
		4. Cache returns the value to every caller waiting on that key

		Load should be pure or idempotent. Errors are handed back to the callers
		unchanged and are never cached.
	*/
	Load(ctx context.Context, key K) (V, error)
}

// LoaderFunc adapts an ordinary function to the Loader interface.
type LoaderFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Load calls f(ctx, key).
func (f LoaderFunc[K, V]) Load(ctx context.Context, key K) (V, error) {
	return f(ctx, key)
}
