// Package pointer normalizes host viewer input into the engine's event
// vocabulary and provides the cooperative scheduling pieces (move
// throttling, settle timers, drag tracking) that the mode controllers share.
// Mouse and touch input collapse into the same pointer kinds.
package pointer

import "time"

// Kind is the pointer event kind.
type Kind string

const (
	Down   Kind = "down"
	Move   Kind = "move"
	Up     Kind = "up"
	Cancel Kind = "cancel"
)

// Event is a normalized pointer event. X and Y are display-space pixels
// relative to the page surface the event landed on.
type Event struct {
	Kind  Kind
	X     float64
	Y     float64
	Page  int
	Touch bool
	Time  time.Time
}

// Clock supplies the current time. Controllers take a Clock so hover and
// throttle behavior is deterministic under test.
type Clock func() time.Time

// SettleTimer is a one-shot deadline checked on frame ticks rather than a
// background timer, keeping all work on the host's event loop.
type SettleTimer struct {
	deadline time.Time
	armed    bool
}

// Arm schedules the timer to fire d after now. Re-arming replaces the
// previous deadline.
func (t *SettleTimer) Arm(now time.Time, d time.Duration) {
	t.deadline = now.Add(d)
	t.armed = true
}

// Disarm cancels a pending deadline.
func (t *SettleTimer) Disarm() { t.armed = false }

// Armed reports whether a deadline is pending.
func (t *SettleTimer) Armed() bool { return t.armed }

// Fire reports whether the deadline has passed, disarming the timer when it
// has.
func (t *SettleTimer) Fire(now time.Time) bool {
	if !t.armed || now.Before(t.deadline) {
		return false
	}
	t.armed = false
	return true
}
