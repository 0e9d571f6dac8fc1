// Package notifytest provides a manual clock for driving notification timers
// deterministically in tests.
package notifytest

import (
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-hotelsite/pkg/notify"
)

// ManualClock implements notify.Clock. Timers only fire from Advance.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

var _ notify.Clock = (*ManualClock)(nil)

// NewManualClock returns a clock positioned at zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

type manualTimer struct {
	clock   *ManualClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// AfterFunc arms a timer relative to the clock's current position.
func (c *ManualClock) AfterFunc(d time.Duration, fn func()) notify.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward and runs every due timer in order.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	remaining := c.timers[:0]
	for _, t := range c.timers {
		switch {
		case t.stopped:
		case t.at <= c.now:
			t.fired = true
			due = append(due, t)
		default:
			remaining = append(remaining, t)
		}
	}
	c.timers = remaining
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of armed, unfired timers.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			count++
		}
	}
	return count
}
