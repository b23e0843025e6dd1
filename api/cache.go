package api

import "context"

/*
Memoizer defines the PUBLIC API of the memoizing cache.
This is a contract that guarantees certain behaviors, without exposing internals.
Sharding, expiration, sweeping and single-flight coordination are all hidden
behind this interface.
*/
type Memoizer[K comparable, V any] interface {

	/*
		Apply returns the value for key.

		BEHAVIOR:
		-------------------
		1. If the key has a stored value younger than the TTL:
		   - Return it immediately (cache hit)

		2. Otherwise:
		   - Compute it with the wrapped function, once, even if many goroutines ask at the same time
		   - Store it in cache if the computation succeeded
		   - Return the value or the computation's error to every waiting caller
	*/
	Apply(ctx context.Context, key K) (V, error)

	/*
		Close gracefully shuts down the cache.

		BEHAVIOR:
		---------
		- Stops the background sweeper and waits for it
		- Makes later Apply calls fail

		Calling Close more than once is safe.
	*/
	Close() error
}
