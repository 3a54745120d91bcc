package annotation

// Dimensions records the unscaled (zoom = 1) size of the page at the moment
// an annotation was created. When the rendered page size later differs, a
// dimension-scale factor re-projects the stored coordinates.
type Dimensions struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IsZero reports whether no dimensions were recorded.
func (d Dimensions) IsZero() bool { return d.X == 0 && d.Y == 0 }

// NormalizePage maps missing or sentinel page values (0, -1) to page 1.
// Pages are 1-indexed everywhere in this module.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Location is the durable spatial descriptor of a thread. Exactly one
// variant exists per annotation kind; consumers switch on the concrete type.
type Location interface {
	// Kind returns the annotation type this location belongs to.
	Kind() Type
	// PageNumber returns the normalized 1-indexed page.
	PageNumber() int
}

// QuadPoint is the four-corner polygon descriptor for one highlighted text
// fragment: x1,y1,x2,y2,x3,y3,x4,y4 in document-space units.
type QuadPoint [8]float64

// PathPoint is a single vertex of a drawn stroke, in document-space units.
type PathPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointLocation anchors a point annotation at a single coordinate.
type PointLocation struct {
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Page       int        `json:"page"`
	Dimensions Dimensions `json:"dimensions"`
}

func (l PointLocation) Kind() Type      { return TypePoint }
func (l PointLocation) PageNumber() int { return NormalizePage(l.Page) }

// HighlightLocation anchors a text highlight: one quad per selected
// line/span fragment.
type HighlightLocation struct {
	Page       int         `json:"page"`
	QuadPoints []QuadPoint `json:"quad_points"`
	Dimensions Dimensions  `json:"dimensions"`
}

func (l HighlightLocation) Kind() Type      { return TypeHighlight }
func (l HighlightLocation) PageNumber() int { return NormalizePage(l.Page) }

// DrawLocation anchors a freehand drawing: one or more strokes, each a
// polyline of document-space points.
type DrawLocation struct {
	Page       int           `json:"page"`
	Paths      [][]PathPoint `json:"paths"`
	Dimensions Dimensions    `json:"dimensions"`
}

func (l DrawLocation) Kind() Type      { return TypeDraw }
func (l DrawLocation) PageNumber() int { return NormalizePage(l.Page) }

// RegionLocation anchors a rectangular region. Coordinates are normalized to
// scale = 1 and multiplied by the runtime scale for display.
type RegionLocation struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Page   int     `json:"page"`
}

func (l RegionLocation) Kind() Type      { return TypeRegion }
func (l RegionLocation) PageNumber() int { return NormalizePage(l.Page) }
