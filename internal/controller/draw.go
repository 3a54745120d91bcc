package controller

import (
	"context"
	"math/rand"
	"time"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/pointer"
	"github.com/penwell/penwell/internal/thread"
)

// Draw event kinds, emitted alongside the shared controller events.
const (
	// EventSoftCommit fires when a stroke crossed a page boundary and the
	// drawing so far was saved to keep visual continuity across the break.
	EventSoftCommit = "softcommit"
	// EventUndoRedo fires whenever the undo/redo depth changes.
	EventUndoRedo = "availableactions"
)

// UndoRedo is the payload on EventUndoRedo.
type UndoRedo struct {
	Undo int
	Redo int
}

// Draw owns freehand drawing threads: stroke capture with undo/redo while
// a drawing is in progress, and selection of saved drawings afterward.
type Draw struct {
	base
	drawing *thread.Drawing
	// page the in-progress drawing belongs to; strokes that cross onto
	// another page soft-commit the drawing first.
	page int
	dims annotation.Dimensions
	// rng picks among overlapping drawings on selection. Uniform random,
	// no z-order disambiguation.
	rng *rand.Rand
}

// NewDraw creates the draw mode controller.
func NewDraw(cfg Config) *Draw {
	c := &Draw{
		drawing: thread.NewDrawing(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	c.init(annotation.TypeDraw, cfg)
	return c
}

// Enter activates draw mode.
func (c *Draw) Enter() {
	c.enter([]binding{
		{kind: pointer.Down, fn: c.handleDown},
		{kind: pointer.Move, fn: c.handleMove},
		{kind: pointer.Up, fn: c.handleUp},
	})
}

// Exit deactivates draw mode, discarding any uncommitted drawing.
func (c *Draw) Exit() {
	c.drawing.Reset()
	c.exit()
}

// Destroy tears the controller down.
func (c *Draw) Destroy() {
	c.Exit()
	c.destroyAll()
}

// HandlePointer routes one pointer event while the mode is active.
func (c *Draw) HandlePointer(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Down:
		c.handleDown(ev)
	case pointer.Move:
		c.handleMove(ev)
	case pointer.Up, pointer.Cancel:
		c.handleUp(ev)
	}
}

// Tick drives hover settling on registered threads.
func (c *Draw) Tick(now time.Time) {
	for _, t := range c.Threads() {
		t.Tick(now)
	}
}

func (c *Draw) handleDown(ev pointer.Event) {
	loc, ok := c.locator.LocationFromEvent(ev)
	if !ok {
		return
	}
	if c.drawing.Empty() {
		// Not drawing yet: a down on an existing drawing selects it.
		if c.selectAt(ev) {
			return
		}
		c.page = loc.Page
		c.dims = loc.Dimensions
	}
	c.softCommitIfCrossed(loc)
	c.drawing.StrokeStart(loc.X, loc.Y)
}

func (c *Draw) handleMove(ev pointer.Event) {
	loc, ok := c.locator.LocationFromEvent(ev)
	if !ok {
		return
	}
	if c.softCommitIfCrossed(loc) {
		// Continue the visual line on the new page.
		c.drawing.StrokeStart(loc.X, loc.Y)
		return
	}
	c.drawing.StrokeMove(loc.X, loc.Y)
}

func (c *Draw) handleUp(pointer.Event) {
	if c.drawing.StrokeStop() {
		c.emitUndoRedo()
	}
}

// softCommitIfCrossed saves the in-progress drawing when a stroke crosses
// onto a different page, then starts a fresh drawing on the new page so the
// line reads as continuous across the break. The continued drawing picks up
// the new page's dimensions.
func (c *Draw) softCommitIfCrossed(loc DocPoint) bool {
	page := annotation.NormalizePage(loc.Page)
	if c.drawing.Empty() || page == annotation.NormalizePage(c.page) {
		return false
	}
	c.drawing.StrokeStop()
	t, err := c.commit(context.Background())
	if err == nil && t != nil {
		c.emit(EventSoftCommit, t)
	}
	c.page = page
	c.dims = loc.Dimensions
	return true
}

// Undo removes the latest stroke of the in-progress drawing.
func (c *Draw) Undo() bool {
	ok := c.drawing.Undo()
	if ok {
		c.emitUndoRedo()
	}
	return ok
}

// Redo restores the latest undone stroke.
func (c *Draw) Redo() bool {
	ok := c.drawing.Redo()
	if ok {
		c.emitUndoRedo()
	}
	return ok
}

// SaveDrawing commits the in-progress drawing as a thread and persists it.
// Returns nil when there is nothing to save.
func (c *Draw) SaveDrawing(ctx context.Context) *thread.Thread {
	c.drawing.StrokeStop()
	t, err := c.commit(ctx)
	if err != nil {
		return nil
	}
	return t
}

// CancelDrawing discards the in-progress drawing.
func (c *Draw) CancelDrawing() {
	c.drawing.Reset()
	c.emitUndoRedo()
}

// commit freezes the drawing into a registered thread and saves it. The
// drawing resets on success so the next stroke starts a fresh thread.
func (c *Draw) commit(ctx context.Context) (*thread.Thread, error) {
	if c.drawing.Empty() {
		return nil, nil
	}
	loc := c.drawing.Location(c.page, c.dims)
	t, err := c.newThread(loc)
	if err != nil {
		return nil, err
	}
	c.drawing.Reset()
	c.emitUndoRedo()
	t.SaveAsync(ctx, "")
	return t, nil
}

// selectAt picks one drawing under the event. Overlapping candidates are
// chosen uniformly at random; there is no topmost-wins ordering.
func (c *Draw) selectAt(ev pointer.Event) bool {
	hits := c.IntersectingThreads(ev)
	if len(hits) == 0 {
		return false
	}
	chosen := hits[c.rng.Intn(len(hits))]
	chosen.Click()
	for _, t := range hits {
		if t != chosen {
			t.ForceClose()
		}
	}
	return true
}

func (c *Draw) emitUndoRedo() {
	c.emit(EventUndoRedo, UndoRedo{
		Undo: c.drawing.UndoCount(),
		Redo: c.drawing.RedoCount(),
	})
}
