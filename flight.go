package cache

import (
	"strconv"
	"sync"
)

/*
flightNames hands out the singleflight name for a key.

singleflight only understands strings, but a printed key is not a safe name:
two unequal keys (pointers to equal structs, types with a custom GoString)
can print the same. Names here are opaque counters assigned per distinct K,
so unequal keys never share a computation.

A name stays assigned while any caller holds it. Every caller keeps its hold
until the flight it joined has delivered, so a key keeps one name for as long
as a computation for it can be running.
*/
type flightNames[K comparable] struct {
	mu    sync.Mutex
	next  uint64
	names map[K]*flightName
}

type flightName struct {
	name string
	refs int
}

func newFlightNames[K comparable]() *flightNames[K] {
	return &flightNames[K]{names: make(map[K]*flightName)}
}

// acquire returns the name for key and registers one hold on it.
func (f *flightNames[K]) acquire(key K) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	n, ok := f.names[key]
	if !ok {
		f.next++
		n = &flightName{name: strconv.FormatUint(f.next, 36)}
		f.names[key] = n
	}
	n.refs++
	return n.name
}

// release drops one hold on key's name and forgets the name once unused.
func (f *flightNames[K]) release(key K) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n, ok := f.names[key]
	if !ok {
		return
	}
	n.refs--
	if n.refs <= 0 {
		delete(f.names, key)
	}
}

// len reports how many keys currently hold a name.
func (f *flightNames[K]) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.names)
}
