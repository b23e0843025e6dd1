package shard

import "hash/maphash"

/*
This file decides HOW a cache key is assigned to a shard.
If every key went to the same shard, that shard's write lock would become a bottleneck.
*/

/*
Selector decides which shard index should handle a given key.
The store does not care HOW this decision is made, only that the same key
always lands on the same index for a given shard count.
*/
type Selector[K comparable] interface {
	Select(key K, shards int) int
}

// HashSelector spreads keys by hashing them with a per-selector random seed.
// maphash.Comparable works for any comparable key type, not just strings.
type HashSelector[K comparable] struct {
	seed maphash.Seed
}

func NewHashSelector[K comparable]() *HashSelector[K] {
	return &HashSelector[K]{seed: maphash.MakeSeed()}
}

// Select chooses the shard index for a given key.
func (h *HashSelector[K]) Select(key K, shards int) int {
	return int(maphash.Comparable(h.seed, key) % uint64(shards))
}
