// Package geometry provides the pure coordinate and shape math used by the
// annotation engine: conversions between document space (fixed units, origin
// bottom-left) and display space (zoomed pixels, origin top-left), bounding
// box reduction, and hit-test predicates.
package geometry

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/penwell/penwell/internal/annotation"
)

// Document units map to CSS pixels at 4:3 when zoom is 100%.
const (
	unitsToPixels = 4.0 / 3.0
	pixelsToUnits = 3.0 / 4.0
)

// dimTolerance ignores sub-pixel variation when deciding whether a page was
// re-laid-out since the annotation was saved.
const dimTolerance = 1.0

// ToDisplaySpace converts document-space coordinate pairs [x1,y1,x2,y2,...]
// to on-screen pixels for a page rendered at displayHeight pixels tall and
// the given zoom scale. The y-axis is inverted.
func ToDisplaySpace(coords []float64, displayHeight, zoom float64) []float64 {
	out := make([]float64, len(coords))
	for i := 0; i+1 < len(coords); i += 2 {
		out[i] = coords[i] * unitsToPixels * zoom
		out[i+1] = displayHeight - coords[i+1]*unitsToPixels*zoom
	}
	return out
}

// ToDocumentSpace converts display-space coordinate pairs back to document
// units, rounding to 4 decimal digits so persisted payloads are stable
// across round-trips.
func ToDocumentSpace(coords []float64, displayHeight, zoom float64) []float64 {
	out := make([]float64, len(coords))
	for i := 0; i+1 < len(coords); i += 2 {
		out[i] = round4(coords[i] * pixelsToUnits / zoom)
		out[i+1] = round4((displayHeight - coords[i+1]) * pixelsToUnits / zoom)
	}
	return out
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// Scale is a per-axis correction factor applied to stored coordinates when
// the rendered page size no longer matches the size recorded at creation.
type Scale struct {
	X float64
	Y float64
}

// DimensionScale compares the page size saved with the annotation against
// the current rendered page rect (normalized back to zoom = 1, with vertical
// padding removed). It returns nil when they match within tolerance, else
// the factors that re-project saved coordinates onto the current page.
func DimensionScale(saved annotation.Dimensions, pageWidth, pageHeight, zoom, heightPadding float64) *Scale {
	if saved.IsZero() || zoom <= 0 {
		return nil
	}
	curW := pageWidth / zoom
	curH := (pageHeight - heightPadding) / zoom
	if math.Abs(saved.X-curW) <= dimTolerance && math.Abs(saved.Y-curH) <= dimTolerance {
		return nil
	}
	return &Scale{X: curW / saved.X, Y: curH / saved.Y}
}

// RectFromBounds builds an r2.Rect from explicit bounds.
func RectFromBounds(minX, minY, maxX, maxY float64) r2.Rect {
	return r2.RectFromPoints(r2.Point{X: minX, Y: minY}, r2.Point{X: maxX, Y: maxY})
}

// RectValid reports whether the rect has finite, ordered bounds. Rects that
// fail this check must not enter a spatial index.
func RectValid(r r2.Rect) bool {
	for _, v := range []float64{r.X.Lo, r.X.Hi, r.Y.Lo, r.Y.Hi} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.X.Lo <= r.X.Hi && r.Y.Lo <= r.Y.Hi
}

// Expand grows the rect by offset on every side.
func Expand(r r2.Rect, offset float64) r2.Rect {
	return RectFromBounds(r.X.Lo-offset, r.Y.Lo-offset, r.X.Hi+offset, r.Y.Hi+offset)
}

// QuadBounds reduces a set of quad points to the single bounding rect
// covering every corner of every quad.
func QuadBounds(quads []annotation.QuadPoint) r2.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, q := range quads {
		for i := 0; i < 8; i += 2 {
			minX = math.Min(minX, q[i])
			maxX = math.Max(maxX, q[i])
			minY = math.Min(minY, q[i+1])
			maxY = math.Max(maxY, q[i+1])
		}
	}
	if len(quads) == 0 {
		return r2.Rect{}
	}
	return RectFromBounds(minX, minY, maxX, maxY)
}

// LocationBounds computes the bounding rect for any location variant.
// Returns false for a nil location or one with no extent (e.g. a drawing
// with no recorded points).
func LocationBounds(loc annotation.Location) (r2.Rect, bool) {
	switch l := loc.(type) {
	case annotation.PointLocation:
		return RectFromBounds(l.X, l.Y, l.X, l.Y), true
	case annotation.HighlightLocation:
		if len(l.QuadPoints) == 0 {
			return r2.Rect{}, false
		}
		return QuadBounds(l.QuadPoints), true
	case annotation.DrawLocation:
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		n := 0
		for _, path := range l.Paths {
			for _, p := range path {
				minX = math.Min(minX, p.X)
				maxX = math.Max(maxX, p.X)
				minY = math.Min(minY, p.Y)
				maxY = math.Max(maxY, p.Y)
				n++
			}
		}
		if n == 0 {
			return r2.Rect{}, false
		}
		return RectFromBounds(minX, minY, maxX, maxY), true
	case annotation.RegionLocation:
		return RectFromBounds(l.X, l.Y, l.X+l.Width, l.Y+l.Height), true
	default:
		return r2.Rect{}, false
	}
}
