// Package clock abstracts timer creation so deadline and timeout logic can
// run against a manual clock in tests.
package clock

import "time"

// Clock supplies the time sources the preload pipeline depends on. The
// per-asset timeout, the blocking deadline race, and the watchdog each
// create independent timers; they must never share timer state.
type Clock interface {
	Now() time.Time
	// After returns a channel that delivers one value once d has elapsed.
	After(d time.Duration) <-chan time.Time
	// Sleep blocks for d.
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }
