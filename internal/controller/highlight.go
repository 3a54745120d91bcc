package controller

import (
	"time"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/pointer"
	"github.com/penwell/penwell/internal/thread"
)

// Highlight owns highlight and highlight-comment threads. Mouse movement
// is throttled through the frame loop, and however many highlights overlap
// the pointer on one tick, at most one ends the tick with its dialog open.
type Highlight struct {
	base
	withComment bool
	throttle    *pointer.Throttle
	hovered     map[*thread.Thread]struct{}
}

// NewHighlight creates the highlight mode controller. withComment selects
// highlight-comment mode, where the first save requires text.
func NewHighlight(cfg Config, withComment bool) *Highlight {
	mode := annotation.TypeHighlight
	if withComment {
		mode = annotation.TypeHighlightComment
	}
	c := &Highlight{
		withComment: withComment,
		throttle:    pointer.NewThrottle(pointer.DefaultMoveInterval, cfg.Clock),
		hovered:     make(map[*thread.Thread]struct{}),
	}
	c.init(mode, cfg)
	return c
}

// Enter activates highlight mode.
func (c *Highlight) Enter() {
	c.enter([]binding{
		{kind: pointer.Move, fn: c.handleMove},
		{kind: pointer.Down, fn: c.handleDown},
	})
}

// Exit deactivates highlight mode.
func (c *Highlight) Exit() {
	c.throttle.Reset()
	c.exit()
}

// Destroy tears the controller down.
func (c *Highlight) Destroy() {
	c.Exit()
	c.destroyAll()
}

// HandlePointer routes one pointer event while the mode is active.
func (c *Highlight) HandlePointer(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Move:
		c.handleMove(ev)
	case pointer.Down:
		c.handleDown(ev)
	}
}

func (c *Highlight) handleMove(ev pointer.Event) {
	c.throttle.Offer(ev)
}

func (c *Highlight) handleDown(ev pointer.Event) {
	if c.DestroyPendingThreads() {
		return
	}
	hits := c.hitThreads(ev)
	if len(hits) == 0 {
		return
	}
	hits[0].Click()
	for _, t := range hits[1:] {
		t.ForceClose()
	}
}

// Tick drains at most one throttled move per interval and resolves the
// hover set for it: the first candidate keeps (or opens) its dialog, every
// other candidate is forced closed, and threads the pointer left begin
// their settle countdown.
func (c *Highlight) Tick(now time.Time) {
	if ev, ok := c.throttle.Drain(); ok {
		c.processMove(ev)
	}
	for _, t := range c.Threads() {
		t.Tick(now)
	}
}

func (c *Highlight) processMove(ev pointer.Event) {
	hits := c.hitThreads(ev)

	next := make(map[*thread.Thread]struct{}, 1)
	for i, t := range hits {
		if i == 0 {
			t.HoverEnter()
			next[t] = struct{}{}
			continue
		}
		t.ForceClose()
	}
	for t := range c.hovered {
		if _, still := next[t]; !still {
			t.HoverLeave()
		}
	}
	c.hovered = next
}

// hitThreads refines the coarse index query with precise quad-point
// hit-testing at the event's document-space position.
func (c *Highlight) hitThreads(ev pointer.Event) []*thread.Thread {
	loc, ok := c.locator.LocationFromEvent(ev)
	if !ok {
		return nil
	}
	var out []*thread.Thread
	for _, t := range c.IntersectingThreads(ev) {
		if t.HitTest(loc.X, loc.Y) {
			out = append(out, t)
		}
	}
	return out
}

// CreateThread starts a pending highlight thread from the quads of a
// completed text selection. Returns nil if validation rejected the
// location.
func (c *Highlight) CreateThread(page int, quads []annotation.QuadPoint, dims annotation.Dimensions) *thread.Thread {
	t, err := c.newThread(annotation.HighlightLocation{
		Page:       annotation.NormalizePage(page),
		QuadPoints: quads,
		Dimensions: dims,
	})
	if err != nil {
		return nil
	}
	return t
}
