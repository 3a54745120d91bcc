package pointer

import "math"

// Region creation gesture rules.
const (
	// MinRegionSize is the smallest clickable region edge, in surface pixels,
	// enforced before scale-down.
	MinRegionSize = 10
	// EdgeInset keeps staged rects off the exact surface edge so they stay
	// clickable and visible.
	EdgeInset = 1
	// clickThreshold is the gesture distance below which a drag counts as an
	// accidental click and stages nothing.
	clickThreshold = 5
)

// DragState tracks the region creation gesture.
type DragState int

const (
	DragIdle DragState = iota
	DragDrawing
	DragStaged
)

// Rect is a staged rectangle in surface pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// DragTracker runs the two-phase region gesture: Start captures the anchor
// relative to the drawing surface, Move yields the live-updating clamped
// rectangle, and Stop stages it or aborts short gestures.
type DragTracker struct {
	state    DragState
	anchorX  float64
	anchorY  float64
	surfaceW float64
	surfaceH float64
	rect     Rect
}

// State returns the current gesture phase.
func (d *DragTracker) State() DragState { return d.state }

// Rect returns the most recently computed rectangle.
func (d *DragTracker) Rect() Rect { return d.rect }

// Start begins a gesture anchored at (x, y) on a surface of the given size.
// Starting while a gesture is staged discards the staged rect.
func (d *DragTracker) Start(x, y, surfaceW, surfaceH float64) {
	d.state = DragDrawing
	d.anchorX = x
	d.anchorY = y
	d.surfaceW = surfaceW
	d.surfaceH = surfaceH
	d.rect = d.clamp(x, y)
}

// Move updates the live rectangle. Returns false when no gesture is active.
func (d *DragTracker) Move(x, y float64) (Rect, bool) {
	if d.state != DragDrawing {
		return Rect{}, false
	}
	d.rect = d.clamp(x, y)
	return d.rect, true
}

// Stop ends the gesture. A gesture whose pointer traveled less than the
// click threshold aborts without staging, so stray clicks never create
// single-pixel regions.
func (d *DragTracker) Stop(x, y float64) (Rect, bool) {
	if d.state != DragDrawing {
		return Rect{}, false
	}
	if math.Hypot(x-d.anchorX, y-d.anchorY) < clickThreshold {
		d.state = DragIdle
		return Rect{}, false
	}
	d.rect = d.clamp(x, y)
	d.state = DragStaged
	return d.rect, true
}

// Reset returns the tracker to idle, discarding any staged rect.
func (d *DragTracker) Reset() {
	d.state = DragIdle
	d.rect = Rect{}
}

// clamp normalizes the anchor/current pair into a rectangle kept inside the
// surface with an edge inset and a minimum size per axis.
func (d *DragTracker) clamp(x, y float64) Rect {
	r := Rect{
		X:      math.Min(d.anchorX, x),
		Y:      math.Min(d.anchorY, y),
		Width:  math.Abs(x - d.anchorX),
		Height: math.Abs(y - d.anchorY),
	}
	r.X = math.Max(r.X, EdgeInset)
	r.Y = math.Max(r.Y, EdgeInset)
	r.Width = math.Max(r.Width, MinRegionSize)
	r.Height = math.Max(r.Height, MinRegionSize)
	if r.X+r.Width > d.surfaceW-EdgeInset {
		r.Width = d.surfaceW - EdgeInset - r.X
	}
	if r.Y+r.Height > d.surfaceH-EdgeInset {
		r.Height = d.surfaceH - EdgeInset - r.Y
	}
	return r
}

// ScaleDown converts a staged surface-pixel rect into the unscaled
// coordinate space persisted in a region location, rounding each component
// to the nearest whole unit.
func (r Rect) ScaleDown(scale float64) Rect {
	if scale <= 0 {
		scale = 1
	}
	return Rect{
		X:      math.Round(r.X / scale),
		Y:      math.Round(r.Y / scale),
		Width:  math.Round(r.Width / scale),
		Height: math.Round(r.Height / scale),
	}
}
