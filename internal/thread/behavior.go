package thread

import (
	"time"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/geometry"
)

// HighlightHoverSettle is how long a highlight's hover dialog survives the
// pointer leaving its geometry, so crossing the line-break gap between
// fragments of one logical highlight does not flicker the dialog.
const HighlightHoverSettle = 75 * time.Millisecond

// Behavior captures the per-kind differences in thread handling. Threads
// compose a Behavior instead of subclassing; adding an annotation kind means
// adding a Behavior, not extending a class chain.
type Behavior interface {
	// ActiveState is the state an explicit click lands in.
	ActiveState() State
	// HoverSettle is the delay before a hover dialog closes after the
	// pointer leaves the mark.
	HoverSettle() time.Duration
	// CancelFirstDestroys reports whether cancelling the first comment on a
	// thread with no persisted comments destroys it. Plain highlights
	// instead toggle back to the lighter dialog.
	CancelFirstDestroys(plain bool) bool
	// HitTest refines a coarse bounding-box hit with the kind's precise
	// geometry, in document-space coordinates.
	HitTest(loc annotation.Location, x, y float64) bool
}

// behaviorFor returns the Behavior for an annotation type.
func behaviorFor(t annotation.Type) Behavior {
	switch t {
	case annotation.TypeHighlight, annotation.TypeHighlightComment:
		return highlightBehavior{}
	case annotation.TypeDraw:
		return drawBehavior{}
	case annotation.TypeRegion:
		return regionBehavior{}
	default:
		return pointBehavior{}
	}
}

type pointBehavior struct{}

func (pointBehavior) ActiveState() State            { return StateActive }
func (pointBehavior) HoverSettle() time.Duration    { return 0 }
func (pointBehavior) CancelFirstDestroys(bool) bool { return true }

// HitTest accepts any hit inside the query tolerance; a point has no finer
// geometry than its indexed bounds.
func (pointBehavior) HitTest(annotation.Location, float64, float64) bool { return true }

type highlightBehavior struct{}

// ActiveState keeps clicked highlights at hover weight; highlights never
// commit to the heavier active dialog.
func (highlightBehavior) ActiveState() State         { return StateHover }
func (highlightBehavior) HoverSettle() time.Duration { return HighlightHoverSettle }

// CancelFirstDestroys keeps plain highlights alive: cancelling the first
// comment toggles back to the plain highlight dialog.
func (highlightBehavior) CancelFirstDestroys(plain bool) bool { return !plain }

func (highlightBehavior) HitTest(loc annotation.Location, x, y float64) bool {
	hl, ok := loc.(annotation.HighlightLocation)
	if !ok {
		return false
	}
	return geometry.PointInQuads(hl.QuadPoints, x, y)
}

type drawBehavior struct{}

func (drawBehavior) ActiveState() State            { return StateActive }
func (drawBehavior) HoverSettle() time.Duration    { return 0 }
func (drawBehavior) CancelFirstDestroys(bool) bool { return true }

// HitTest accepts any bounding-box hit; overlapping drawings are
// tie-broken by the controller.
func (drawBehavior) HitTest(annotation.Location, float64, float64) bool { return true }

type regionBehavior struct{}

func (regionBehavior) ActiveState() State            { return StateActive }
func (regionBehavior) HoverSettle() time.Duration    { return 0 }
func (regionBehavior) CancelFirstDestroys(bool) bool { return true }

func (regionBehavior) HitTest(loc annotation.Location, x, y float64) bool {
	rl, ok := loc.(annotation.RegionLocation)
	if !ok {
		return false
	}
	return x >= rl.X && x <= rl.X+rl.Width && y >= rl.Y && y <= rl.Y+rl.Height
}
