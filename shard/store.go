package shard

import (
	"sync/atomic"

	"github.com/krisalay/timed-cache/types"
)

/*
This file defines how data is actually stored inside a shard. This is NOT a normal map.
- Reads should be very fast
- Reads should NOT require locks
- Writes (computed results and sweeps) are less frequent and can afford extra work

To achieve this, we use a technique called: "Copy-On-Write" (COW)
*/

// ShardStore is the interface used by a shard to store and retrieve cache entries.
// Mutating methods must be serialized by the caller; Get may run concurrently with anything.
type ShardStore[K comparable, V any] interface {

	// Get retrieves an entry by key.
	Get(K) (*types.CacheEntry[V], bool)

	// Put inserts or replaces an entry.
	Put(K, *types.CacheEntry[V])

	// Delete removes an entry and reports whether it was present.
	Delete(K) bool

	// Retain keeps only the entries for which keep returns true and
	// returns how many were dropped.
	Retain(keep func(K, *types.CacheEntry[V]) bool) int

	// Reset drops every entry.
	Reset()

	// Size returns how many entries are stored.
	Size() int64
}

/*
cowStore is a Copy-On-Write implementation of ShardStore.

- Readers always see an immutable snapshot
- Writers create a NEW copy of the map
- The new map replaces the old one atomically

Because a published map is never written again, Retain can walk a snapshot while
other goroutines keep reading it, and nothing is skipped or removed twice.
*/
type cowStore[K comparable, V any] struct {

	// data points at the current map. The map behind it is read-only once stored.
	data atomic.Pointer[map[K]*types.CacheEntry[V]]

	// size tracks the number of entries so Size never has to touch the map.
	size atomic.Int64
}

func NewCOWStore[K comparable, V any]() *cowStore[K, V] {
	s := &cowStore[K, V]{}
	m := make(map[K]*types.CacheEntry[V])
	s.data.Store(&m)
	return s
}

func (s *cowStore[K, V]) snapshot() map[K]*types.CacheEntry[V] {
	return *s.data.Load()
}

func (s *cowStore[K, V]) publish(m map[K]*types.CacheEntry[V]) {
	s.data.Store(&m)
	s.size.Store(int64(len(m)))
}

// Get retrieves an entry from the current snapshot.
func (s *cowStore[K, V]) Get(key K) (*types.CacheEntry[V], bool) {
	ent, ok := s.snapshot()[key]
	return ent, ok
}

/*
Put inserts or updates an entry. This is where copy-on-write happens.

1. Load the current map
2. Create a NEW map and copy all existing entries
3. Add the new entry
4. Atomically replace the old map
*/
func (s *cowStore[K, V]) Put(key K, ent *types.CacheEntry[V]) {
	old := s.snapshot()

	n := make(map[K]*types.CacheEntry[V], len(old)+1)
	for k, v := range old {
		n[k] = v
	}
	n[key] = ent

	s.publish(n)
}

// Delete removes an entry. Just like Put, this uses copy-on-write.
func (s *cowStore[K, V]) Delete(key K) bool {
	old := s.snapshot()
	if _, ok := old[key]; !ok {
		return false
	}

	n := make(map[K]*types.CacheEntry[V], len(old))
	for k, v := range old {
		if k != key {
			n[k] = v
		}
	}

	s.publish(n)
	return true
}

// Retain filters the current snapshot into a new map and swaps it in once.
// If nothing is dropped the old map stays published.
func (s *cowStore[K, V]) Retain(keep func(K, *types.CacheEntry[V]) bool) int {
	old := s.snapshot()

	n := make(map[K]*types.CacheEntry[V], len(old))
	for k, v := range old {
		if keep(k, v) {
			n[k] = v
		}
	}

	dropped := len(old) - len(n)
	if dropped > 0 {
		s.publish(n)
	}
	return dropped
}

func (s *cowStore[K, V]) Reset() {
	s.publish(make(map[K]*types.CacheEntry[V]))
}

// Size returns how many entries are in the store.
func (s *cowStore[K, V]) Size() int64 {
	return s.size.Load()
}
