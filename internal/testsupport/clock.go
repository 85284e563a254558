package testsupport

import (
	"sync"
	"time"
)

// ManualClock implements clock.Clock with explicitly advanced time so
// deadline and timeout behavior can be tested without real waiting.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	waiters []*manualWaiter
}

type manualWaiter struct {
	at time.Time
	ch chan time.Time
}

// NewManualClock returns a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan time.Time, 1)
	at := c.now.Add(d)
	if d <= 0 {
		ch <- c.now
		return ch
	}
	c.waiters = append(c.waiters, &manualWaiter{at: at, ch: ch})
	return ch
}

func (c *ManualClock) Sleep(d time.Duration) {
	<-c.After(d)
}

// Advance moves the clock forward and fires every timer due at or before
// the new time.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	remaining := c.waiters[:0]
	var due []*manualWaiter
	for _, w := range c.waiters {
		if !w.at.After(now) {
			due = append(due, w)
			continue
		}
		remaining = append(remaining, w)
	}
	c.waiters = remaining
	c.mu.Unlock()

	for _, w := range due {
		w.ch <- now
	}
}

// WaiterCount returns how many timers are currently registered.
func (c *ManualClock) WaiterCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

// BlockUntil polls until at least n timers are registered. Tests use it to
// make sure goroutines have armed their timers before advancing the clock.
func (c *ManualClock) BlockUntil(n int) {
	for {
		if c.WaiterCount() >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
}
