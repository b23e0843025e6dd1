package shard

import (
	"time"

	"github.com/krisalay/timed-cache/expiration"
	"github.com/krisalay/timed-cache/types"
)

// DefaultShards is the shard count used when none is configured.
const DefaultShards = 32

/*
Store is the concurrency-safe key → entry mapping the cache is built on.

Every read, write and scan of the underlying maps goes through these methods:
- Get is lock-free (it reads an immutable snapshot)
- Put, Remove, EvictExpired and Clear take the owning shard's write lock
*/
type Store[K comparable, V any] struct {
	shards   []*Shard[K, V]
	selector Selector[K]
}

// NewStore creates a store with n shards. n <= 0 selects DefaultShards.
func NewStore[K comparable, V any](n int) *Store[K, V] {
	if n <= 0 {
		n = DefaultShards
	}

	s := make([]*Shard[K, V], n)
	for i := range s {
		s[i] = NewShard[K, V]()
	}

	return &Store[K, V]{
		shards:   s,
		selector: NewHashSelector[K](),
	}
}

func (s *Store[K, V]) shardFor(key K) *Shard[K, V] {
	return s.shards[s.selector.Select(key, len(s.shards))]
}

// Get returns the current entry for key, if any. It has no side effects.
func (s *Store[K, V]) Get(key K) (*types.CacheEntry[V], bool) {
	return s.shardFor(key).Store.Get(key)
}

// Put stores value under key in a new entry stamped with now, replacing any previous entry.
func (s *Store[K, V]) Put(key K, value V, now time.Time) *types.CacheEntry[V] {
	ent := types.NewCacheEntry(value, now)

	sh := s.shardFor(key)
	sh.WriteMu.Lock()
	defer sh.WriteMu.Unlock()

	sh.Store.Put(key, ent)
	return ent
}

// Remove deletes key if present and reports whether it was.
func (s *Store[K, V]) Remove(key K) bool {
	sh := s.shardFor(key)
	sh.WriteMu.Lock()
	defer sh.WriteMu.Unlock()

	return sh.Store.Delete(key)
}

/*
EvictExpired removes every entry that exp judges stale at now and returns how many were removed.

Shards are processed one after another. Each shard is filtered from an immutable
snapshot under its write lock, so concurrent Put/Remove calls on that shard wait
for the swap and concurrent Get calls see either the old or the new map.
*/
func (s *Store[K, V]) EvictExpired(now time.Time, exp expiration.Strategy) int {
	removed := 0
	for _, sh := range s.shards {
		sh.WriteMu.Lock()
		removed += sh.Store.Retain(func(_ K, ent *types.CacheEntry[V]) bool {
			return !exp.IsExpired(ent.InsertedAt, now)
		})
		sh.WriteMu.Unlock()
	}
	return removed
}

// Clear removes every entry.
func (s *Store[K, V]) Clear() {
	for _, sh := range s.shards {
		sh.WriteMu.Lock()
		sh.Store.Reset()
		sh.WriteMu.Unlock()
	}
}

// Len returns the number of stored entries, including stale ones not yet swept.
func (s *Store[K, V]) Len() int {
	var n int64
	for _, sh := range s.shards {
		n += sh.Store.Size()
	}
	return int(n)
}

// Shards returns the shard count.
func (s *Store[K, V]) Shards() int {
	return len(s.shards)
}
