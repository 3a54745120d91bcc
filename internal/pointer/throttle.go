package pointer

import "time"

// DefaultMoveInterval bounds how often cached move events are processed
// during continuous mouse movement.
const DefaultMoveInterval = 50 * time.Millisecond

// Throttle coalesces high-frequency move events: Offer caches the latest
// raw event, and Drain (called from the host's frame loop) releases at most
// one event per interval.
type Throttle struct {
	interval time.Duration
	now      Clock
	last     time.Time
	pending  *Event
}

// NewThrottle returns a throttle releasing one event per interval. A zero
// interval falls back to DefaultMoveInterval; a nil clock uses time.Now.
func NewThrottle(interval time.Duration, now Clock) *Throttle {
	if interval <= 0 {
		interval = DefaultMoveInterval
	}
	if now == nil {
		now = time.Now
	}
	return &Throttle{interval: interval, now: now}
}

// Offer caches ev as the next event to release, replacing any event already
// cached.
func (t *Throttle) Offer(ev Event) {
	copied := ev
	t.pending = &copied
}

// Drain returns the cached event if the interval has elapsed since the last
// release. Otherwise (or when nothing is cached) it returns false.
func (t *Throttle) Drain() (Event, bool) {
	if t.pending == nil {
		return Event{}, false
	}
	now := t.now()
	if now.Sub(t.last) < t.interval {
		return Event{}, false
	}
	ev := *t.pending
	t.pending = nil
	t.last = now
	return ev, true
}

// Reset drops any cached event and clears the release clock.
func (t *Throttle) Reset() {
	t.pending = nil
	t.last = time.Time{}
}
