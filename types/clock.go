package types

import "time"

// Clock provides the current time to the cache and the sweeper.
// Tests swap in a manual clock to step over TTL boundaries without sleeping.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
