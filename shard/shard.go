package shard

import (
	"sync"
)

/*
This file defines what a "Shard" is. A shard is a small, independent piece of the cache.
Instead of having: One big map and one big lock
We split the cache into many shards. Each shard:
- Holds some portion of the data
- Has its own lock for writes

A sweep only ever holds one shard lock at a time, so computations landing in
other shards are never blocked behind it.
*/

type Shard[K comparable, V any] struct {

	// Store holds the actual key → entry data for this shard.
	// It is a copy-on-write store that allows lock-free reads.
	Store ShardStore[K, V]

	// WriteMu serializes every mutation of Store (put, delete, sweep, reset).
	// - Reads are lock-free
	// - Writes are protected by this mutex
	WriteMu sync.Mutex
}

func NewShard[K comparable, V any]() *Shard[K, V] {
	return &Shard[K, V]{
		Store: NewCOWStore[K, V](),
	}
}
