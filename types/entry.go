package types

import "time"

// CacheEntry is a computed value plus the moment it was stored.
//
// Entries are immutable. Refreshing a key stores a brand new entry instead of
// touching the timestamp or value of the old one, so a reader holding a pointer
// never observes a half-updated entry.
type CacheEntry[V any] struct {
	Value      V
	InsertedAt time.Time
}

// NewCacheEntry stamps value with now.
func NewCacheEntry[V any](value V, now time.Time) *CacheEntry[V] {
	return &CacheEntry[V]{Value: value, InsertedAt: now}
}

// Age reports how long the entry has been stored as of now.
func (e *CacheEntry[V]) Age(now time.Time) time.Duration {
	return now.Sub(e.InsertedAt)
}
