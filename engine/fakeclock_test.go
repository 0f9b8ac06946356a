package engine

import (
	"sort"
	"sync"
	"time"
)

// fakeClock only moves when told to. Callbacks run synchronously inside
// Advance, in the order they are due.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	due     time.Duration
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{}
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{clock: c, due: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward by d, firing everything that falls due
// including timers scheduled by the callbacks themselves.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDue(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.due
		next.fired = true
		c.mu.Unlock()

		next.f()
	}
}

// Fire runs a timer even if it was stopped, the way a real timer can when
// Stop loses the race with expiry.
func (c *fakeClock) Fire(t Timer) {
	ft := t.(*fakeTimer)
	c.mu.Lock()
	ft.fired = true
	c.mu.Unlock()
	ft.f()
}

// Pending counts timers that have neither fired nor been stopped
func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// All returns every timer ever scheduled, oldest first
func (c *fakeClock) All() []Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	all := make([]Timer, 0, len(c.timers))
	for _, t := range c.timers {
		all = append(all, t)
	}
	return all
}

func (c *fakeClock) nextDue(target time.Duration) *fakeTimer {
	due := []*fakeTimer{}
	for _, t := range c.timers {
		if !t.fired && !t.stopped && t.due <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	return due[0]
}
