package controller

import (
	"math"
	"time"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/pointer"
	"github.com/penwell/penwell/internal/thread"
)

// Point owns point annotation threads. Exactly one comment dialog is open
// at a time: a click while a pending point exists destroys the pending
// thread and consumes the click instead of stacking dialogs.
type Point struct {
	base
}

// NewPoint creates the point mode controller.
func NewPoint(cfg Config) *Point {
	c := &Point{}
	c.init(annotation.TypePoint, cfg)
	return c
}

// Enter activates point mode.
func (c *Point) Enter() {
	c.enter([]binding{
		{kind: pointer.Down, fn: c.handleDown},
	})
}

// Exit deactivates point mode, destroying any pending thread.
func (c *Point) Exit() { c.exit() }

// Destroy tears the controller down.
func (c *Point) Destroy() {
	c.exit()
	c.destroyAll()
}

// HandlePointer routes one pointer event while the mode is active.
func (c *Point) HandlePointer(ev pointer.Event) {
	if ev.Kind == pointer.Down {
		c.handleDown(ev)
	}
}

// Tick drives hover settling on registered threads.
func (c *Point) Tick(now time.Time) {
	for _, t := range c.Threads() {
		t.Tick(now)
	}
}

func (c *Point) handleDown(ev pointer.Event) {
	// Cleaning up a pending thread consumes the click.
	if c.DestroyPendingThreads() {
		return
	}

	if hits := c.IntersectingThreads(ev); len(hits) > 0 {
		hits[0].Click()
		for _, t := range hits[1:] {
			t.ForceClose()
		}
		return
	}

	loc, ok := c.locator.LocationFromEvent(ev)
	if !ok {
		return
	}
	c.CreateThread(loc)
}

// CreateThread starts a pending point thread at the resolved location and
// returns it, or nil if validation rejected the location.
func (c *Point) CreateThread(loc DocPoint) *thread.Thread {
	if math.IsNaN(loc.X) || math.IsNaN(loc.Y) {
		return nil
	}
	t, err := c.newThread(annotation.PointLocation{
		X:          loc.X,
		Y:          loc.Y,
		Page:       annotation.NormalizePage(loc.Page),
		Dimensions: loc.Dimensions,
	})
	if err != nil {
		return nil
	}
	return t
}
