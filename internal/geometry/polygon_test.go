package geometry

import (
	"testing"

	"github.com/penwell/penwell/internal/annotation"
)

func TestPointInPolygon(t *testing.T) {
	// A quad point lists corners clockwise from bottom-left.
	square := QuadPolygon(annotation.QuadPoint{0, 0, 10, 0, 10, 10, 0, 10})

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{name: "center", x: 5, y: 5, want: true},
		{name: "near corner inside", x: 0.5, y: 0.5, want: true},
		{name: "outside right", x: 10.5, y: 5, want: false},
		{name: "outside above", x: 5, y: 11, want: false},
		{name: "far away", x: -100, y: -100, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(square, tt.x, tt.y); got != tt.want {
				t.Errorf("PointInPolygon(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPointInPolygonSkewed(t *testing.T) {
	// Rotated text produces non-axis-aligned quads; the even-odd rule must
	// still classify correctly.
	diamond := QuadPolygon(annotation.QuadPoint{5, 0, 10, 5, 5, 10, 0, 5})
	if !PointInPolygon(diamond, 5, 5) {
		t.Error("center of diamond should be inside")
	}
	if PointInPolygon(diamond, 1, 1) {
		t.Error("corner of bounding box should be outside the diamond")
	}
}

func TestPointInPolygonDegenerate(t *testing.T) {
	if PointInPolygon(nil, 0, 0) {
		t.Error("empty polygon contains nothing")
	}
}

func TestPointInQuads(t *testing.T) {
	quads := []annotation.QuadPoint{
		{0, 0, 10, 0, 10, 5, 0, 5},
		{0, 10, 10, 10, 10, 15, 0, 15},
	}
	if !PointInQuads(quads, 5, 2) {
		t.Error("point in first quad not detected")
	}
	if !PointInQuads(quads, 5, 12) {
		t.Error("point in second quad not detected")
	}
	// The gap between line fragments is not part of the highlight.
	if PointInQuads(quads, 5, 7) {
		t.Error("point in the gap between quads should miss")
	}
}
