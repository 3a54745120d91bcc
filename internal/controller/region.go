package controller

import (
	"time"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/pointer"
	"github.com/penwell/penwell/internal/thread"
)

// Region owns rectangular region threads. Creation is the two-phase drag
// gesture: the tracker clamps the live rectangle to the page surface and
// aborts gestures short enough to be accidental clicks, which then fall
// through to selection.
type Region struct {
	base
	drag pointer.DragTracker
	// page the active gesture started on; the staged rect stays there.
	page int
}

// NewRegion creates the region mode controller.
func NewRegion(cfg Config) *Region {
	c := &Region{}
	c.init(annotation.TypeRegion, cfg)
	if cfg.Locator != nil {
		c.resolve = cfg.Locator.UnscaledPoint
	}
	return c
}

// Enter activates region mode.
func (c *Region) Enter() {
	c.enter([]binding{
		{kind: pointer.Down, fn: c.handleDown},
		{kind: pointer.Move, fn: c.handleMove},
		{kind: pointer.Up, fn: c.handleUp},
	})
}

// Exit deactivates region mode, discarding any in-flight gesture.
func (c *Region) Exit() {
	c.drag.Reset()
	c.exit()
}

// Destroy tears the controller down.
func (c *Region) Destroy() {
	c.Exit()
	c.destroyAll()
}

// HandlePointer routes one pointer event while the mode is active.
func (c *Region) HandlePointer(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Down:
		c.handleDown(ev)
	case pointer.Move:
		c.handleMove(ev)
	case pointer.Up:
		c.handleUp(ev)
	case pointer.Cancel:
		c.drag.Reset()
	}
}

// Tick drives hover settling on registered threads.
func (c *Region) Tick(now time.Time) {
	for _, t := range c.Threads() {
		t.Tick(now)
	}
}

// StagedRect exposes the live rectangle for the host to render during the
// gesture.
func (c *Region) StagedRect() (pointer.Rect, bool) {
	if c.drag.State() == pointer.DragIdle {
		return pointer.Rect{}, false
	}
	return c.drag.Rect(), true
}

func (c *Region) handleDown(ev pointer.Event) {
	if c.DestroyPendingThreads() {
		return
	}
	page := annotation.NormalizePage(ev.Page)
	w, h, ok := c.locator.PageSize(page)
	if !ok {
		return
	}
	c.page = page
	c.drag.Start(ev.X, ev.Y, w, h)
}

func (c *Region) handleMove(ev pointer.Event) {
	c.drag.Move(ev.X, ev.Y)
}

func (c *Region) handleUp(ev pointer.Event) {
	rect, staged := c.drag.Stop(ev.X, ev.Y)
	if !staged {
		// Too short to be a drag: treat as a selection click.
		if hits := c.IntersectingThreads(ev); len(hits) > 0 {
			hits[0].Click()
			for _, t := range hits[1:] {
				t.ForceClose()
			}
		}
		return
	}
	c.CreateThread(c.page, rect)
	c.drag.Reset()
}

// CreateThread stages a pending region thread from a surface-pixel rect,
// storing the location scaled back to the unscaled coordinate space.
func (c *Region) CreateThread(page int, rect pointer.Rect) *thread.Thread {
	scaled := rect.ScaleDown(c.locator.Zoom())
	t, err := c.newThread(annotation.RegionLocation{
		X:      scaled.X,
		Y:      scaled.Y,
		Width:  scaled.Width,
		Height: scaled.Height,
		Page:   annotation.NormalizePage(page),
	})
	if err != nil {
		return nil
	}
	return t
}
