package thread

import (
	"github.com/golang/geo/r2"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/geometry"
)

// Drawing accumulates the strokes of an in-progress draw thread before the
// thread's location is frozen at save time. Undo and redo are bounded by
// the strokes taken since the drawing became current; starting a new stroke
// clears the redo stack.
type Drawing struct {
	strokes [][]annotation.PathPoint
	undone  [][]annotation.PathPoint
	current []annotation.PathPoint
	active  bool
}

// NewDrawing returns an empty drawing.
func NewDrawing() *Drawing { return &Drawing{} }

// StrokeStart begins a new stroke at (x, y) in document space. Any strokes
// undone earlier become unreachable.
func (d *Drawing) StrokeStart(x, y float64) {
	d.undone = nil
	d.active = true
	d.current = []annotation.PathPoint{{X: x, Y: y}}
}

// StrokeMove extends the active stroke. No-op when no stroke is active.
func (d *Drawing) StrokeMove(x, y float64) {
	if !d.active {
		return
	}
	d.current = append(d.current, annotation.PathPoint{X: x, Y: y})
}

// StrokeStop commits the active stroke. Single-point strokes are kept: a
// dot is a valid drawing. Returns false when no stroke was active.
func (d *Drawing) StrokeStop() bool {
	if !d.active {
		return false
	}
	d.strokes = append(d.strokes, d.current)
	d.current = nil
	d.active = false
	return true
}

// Undo removes the most recent committed stroke, returning false when
// there is nothing to undo.
func (d *Drawing) Undo() bool {
	if len(d.strokes) == 0 {
		return false
	}
	last := d.strokes[len(d.strokes)-1]
	d.strokes = d.strokes[:len(d.strokes)-1]
	d.undone = append(d.undone, last)
	return true
}

// Redo restores the most recently undone stroke, returning false when the
// redo stack is empty.
func (d *Drawing) Redo() bool {
	if len(d.undone) == 0 {
		return false
	}
	last := d.undone[len(d.undone)-1]
	d.undone = d.undone[:len(d.undone)-1]
	d.strokes = append(d.strokes, last)
	return true
}

// UndoCount and RedoCount report the available undo/redo depth; the host
// uses them to enable or gray out its buttons.
func (d *Drawing) UndoCount() int { return len(d.strokes) }
func (d *Drawing) RedoCount() int { return len(d.undone) }

// Empty reports whether the drawing has no committed strokes and no active
// stroke.
func (d *Drawing) Empty() bool {
	return len(d.strokes) == 0 && !d.active
}

// Strokes returns a copy of the committed strokes.
func (d *Drawing) Strokes() [][]annotation.PathPoint {
	out := make([][]annotation.PathPoint, len(d.strokes))
	for i, s := range d.strokes {
		out[i] = append([]annotation.PathPoint(nil), s...)
	}
	return out
}

// Bounds returns the bounding rect of the committed strokes.
func (d *Drawing) Bounds() (r2.Rect, bool) {
	return geometry.LocationBounds(annotation.DrawLocation{Paths: d.strokes})
}

// Location freezes the drawing into a draw location on the given page.
func (d *Drawing) Location(page int, dims annotation.Dimensions) annotation.DrawLocation {
	return annotation.DrawLocation{
		Page:       annotation.NormalizePage(page),
		Paths:      d.Strokes(),
		Dimensions: dims,
	}
}

// Reset clears every stroke and both stacks, e.g. after a soft commit
// carried the drawing into a saved thread.
func (d *Drawing) Reset() {
	d.strokes = nil
	d.undone = nil
	d.current = nil
	d.active = false
}
