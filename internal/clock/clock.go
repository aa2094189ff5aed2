// Package clock is the host's only source of wall time so tests can pin it.
package clock

import (
	"sync/atomic"
	"time"
)

var source atomic.Pointer[func() time.Time]

// Now returns the current time of the active source.
func Now() time.Time {
	if fn := source.Load(); fn != nil {
		return (*fn)()
	}
	return time.Now()
}

// Set replaces the time source until the returned restore func is called.
func Set(fn func() time.Time) (restore func()) {
	previous := source.Swap(&fn)
	return func() { source.Store(previous) }
}
