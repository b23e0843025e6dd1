package expiration

import "time"

/*
AfterWrite implements "expire after write": an entry lives for exactly TTL from the
moment it was stored, no matter how often it is read. Reads never extend it, which is
what keeps a memoized value from being served forever to a busy caller.
*/
type AfterWrite struct {

	// TTL (Time-To-Live) is how long an entry stays valid after it is written.
	TTL time.Duration
}

// IsExpired reports age >= TTL. An entry exactly TTL old is already stale.
func (e AfterWrite) IsExpired(insertedAt, now time.Time) bool {
	return now.Sub(insertedAt) >= e.TTL
}
