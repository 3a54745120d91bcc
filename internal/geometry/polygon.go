package geometry

import (
	"github.com/golang/geo/r2"

	"github.com/penwell/penwell/internal/annotation"
)

// QuadPolygon expands one quad point descriptor into its four corners.
func QuadPolygon(q annotation.QuadPoint) []r2.Point {
	return []r2.Point{
		{X: q[0], Y: q[1]},
		{X: q[2], Y: q[3]},
		{X: q[4], Y: q[5]},
		{X: q[6], Y: q[7]},
	}
}

// PointInPolygon applies the even-odd (ray casting) rule to decide whether
// (x, y) lies inside the polygon. Points on an edge may land on either side;
// callers use this after a coarse bounding-box pass, so the boundary case is
// not load-bearing.
func PointInPolygon(poly []r2.Point, x, y float64) bool {
	inside := false
	n := len(poly)
	if n < 3 {
		return false
	}
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// PointInQuads reports whether (x, y) falls inside any of the quads. Used
// for precise highlight hit-testing beyond the bounding-box query.
func PointInQuads(quads []annotation.QuadPoint, x, y float64) bool {
	for _, q := range quads {
		if PointInPolygon(QuadPolygon(q), x, y) {
			return true
		}
	}
	return false
}
