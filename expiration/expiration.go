// This file defines how cache entries expire over time.

package expiration

import "time"

/*
Strategy is the interface that all expiration rules must follow. Instead of hard-coding
expiration logic into the cache, we define a strategy so the lookup path and the
background sweeper judge staleness with exactly the same rule.
*/
type Strategy interface {

	// IsExpired reports whether an entry stored at insertedAt is stale at now.
	IsExpired(insertedAt, now time.Time) bool
}
