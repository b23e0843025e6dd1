package cache

import "sync/atomic"

// Stats is a types.Metrics implementation backed by atomic counters.
type Stats struct {
	hits     atomic.Int64
	misses   atomic.Int64
	expired  atomic.Int64
	shared   atomic.Int64
	failures atomic.Int64
}

func (s *Stats) Hit()     { s.hits.Add(1) }
func (s *Stats) Miss()    { s.misses.Add(1) }
func (s *Stats) Expire()  { s.expired.Add(1) }
func (s *Stats) Shared()  { s.shared.Add(1) }
func (s *Stats) Failure() { s.failures.Add(1) }

// StatsSnapshot is a point-in-time copy of cache statistics.
type StatsSnapshot struct {
	Hits     int64
	Misses   int64
	Expired  int64
	Shared   int64
	Failures int64
}

// HitRate returns the cache hit rate as a value between 0 and 1.
// Returns 0 if there have been no lookups.
func (s StatsSnapshot) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Snapshot returns a point-in-time copy of the counters.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Hits:     s.hits.Load(),
		Misses:   s.misses.Load(),
		Expired:  s.expired.Load(),
		Shared:   s.shared.Load(),
		Failures: s.failures.Load(),
	}
}
