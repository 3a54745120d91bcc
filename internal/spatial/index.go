// Package spatial implements the per-page spatial index used to answer
// "which annotation threads sit under this rectangle" in better than linear
// average time. The structure is a fixed-size grid of buckets keyed by cell
// coordinates; bounded per-page annotation counts make this sufficient
// without an external R-tree.
package spatial

import (
	"math"

	"github.com/golang/geo/r2"
)

// Item is anything registerable in an index. Bounds must be finite and
// ordered; the registering component validates this, the index does not.
type Item interface {
	Bounds() r2.Rect
}

// defaultCellSize is the grid pitch in document units. Typical annotation
// marks span one or a handful of cells.
const defaultCellSize = 256.0

type cellKey struct {
	x int
	y int
}

type itemRecord struct {
	bounds r2.Rect
	count  int
}

// Index is a mutable bounding-box index over a single page's items.
// The zero value is not usable; construct with NewIndex.
type Index struct {
	cellSize float64
	cells    map[cellKey][]Item
	items    map[Item]*itemRecord
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		cellSize: defaultCellSize,
		cells:    make(map[cellKey][]Item),
		items:    make(map[Item]*itemRecord),
	}
}

// Len returns the number of distinct items currently indexed.
func (ix *Index) Len() int { return len(ix.items) }

// Insert registers an item under every grid cell its bounds cover. The
// bounds are captured at insert time; if an item's bounds change it must be
// removed and re-inserted. Duplicate inserts of the same reference stack;
// callers keep registration symmetric.
func (ix *Index) Insert(item Item) {
	bounds := item.Bounds()
	rec := ix.items[item]
	if rec == nil {
		rec = &itemRecord{bounds: bounds}
		ix.items[item] = rec
		ix.eachCell(bounds, func(key cellKey) {
			ix.cells[key] = append(ix.cells[key], item)
		})
	}
	rec.count++
}

// Remove unregisters one insertion of the item. Removing an item that is
// not present is a silent no-op.
func (ix *Index) Remove(item Item) {
	rec, ok := ix.items[item]
	if !ok {
		return
	}
	rec.count--
	if rec.count > 0 {
		return
	}
	delete(ix.items, item)
	ix.eachCell(rec.bounds, func(key cellKey) {
		bucket := ix.cells[key]
		for i, other := range bucket {
			if other == item {
				bucket[i] = bucket[len(bucket)-1]
				bucket = bucket[:len(bucket)-1]
				break
			}
		}
		if len(bucket) == 0 {
			delete(ix.cells, key)
		} else {
			ix.cells[key] = bucket
		}
	})
}

// Search returns every indexed item whose bounds intersect the query rect,
// in unspecified order. An empty index yields an empty slice.
func (ix *Index) Search(query r2.Rect) []Item {
	var out []Item
	seen := make(map[Item]struct{})
	ix.eachCell(query, func(key cellKey) {
		for _, item := range ix.cells[key] {
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			if rec := ix.items[item]; rec != nil && rec.bounds.Intersects(query) {
				out = append(out, item)
			}
		}
	})
	return out
}

// All returns every distinct indexed item.
func (ix *Index) All() []Item {
	out := make([]Item, 0, len(ix.items))
	for item := range ix.items {
		out = append(out, item)
	}
	return out
}

func (ix *Index) eachCell(bounds r2.Rect, fn func(cellKey)) {
	x0 := int(math.Floor(bounds.X.Lo / ix.cellSize))
	x1 := int(math.Floor(bounds.X.Hi / ix.cellSize))
	y0 := int(math.Floor(bounds.Y.Lo / ix.cellSize))
	y1 := int(math.Floor(bounds.Y.Hi / ix.cellSize))
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			fn(cellKey{x, y})
		}
	}
}
