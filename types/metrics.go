package types

// This file defines how the cache reports what it is doing.

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the cache lifecycle. The cache will call these methods whenever something happens.
Implementations must be safe for concurrent use.
*/
type Metrics interface {

	// Hit is called when the cache returns a stored, unexpired value.
	Hit()

	// Miss is called when the cache does NOT have a fresh value and has to ask the loader.
	Miss()

	// Expire is called once per entry the sweeper removes because it has passed its TTL.
	Expire()

	// Shared is called for each caller whose result came from a computation that
	// served more than one caller.
	Shared()

	// Failure is called when the loader returned an error.
	Failure()
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

We don't want to force every user of the cache to implement metrics,
and we don't want nil checks on every hot path either.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()     {}
func (NoopMetrics) Miss()    {}
func (NoopMetrics) Expire()  {}
func (NoopMetrics) Shared()  {}
func (NoopMetrics) Failure() {}
