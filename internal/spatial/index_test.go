package spatial

import (
	"fmt"
	"testing"

	"github.com/golang/geo/r2"
)

// rectItem is a fixed-bounds test item.
type rectItem struct {
	name   string
	bounds r2.Rect
}

func (it *rectItem) Bounds() r2.Rect { return it.bounds }

func rect(minX, minY, maxX, maxY float64) r2.Rect {
	return r2.RectFromPoints(r2.Point{X: minX, Y: minY}, r2.Point{X: maxX, Y: maxY})
}

func names(items []Item) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, it := range items {
		out[it.(*rectItem).name] = true
	}
	return out
}

func TestIndexSearchMatchesBruteForce(t *testing.T) {
	items := []*rectItem{
		{name: "small origin", bounds: rect(0, 0, 10, 10)},
		{name: "mid page", bounds: rect(300, 400, 350, 420)},
		{name: "spans cells", bounds: rect(100, 100, 600, 600)},
		{name: "thin line", bounds: rect(0, 500, 800, 501)},
		{name: "point", bounds: rect(255, 255, 255, 255)},
		{name: "cell boundary", bounds: rect(256, 256, 257, 257)},
		{name: "negative", bounds: rect(-50, -50, -10, -10)},
	}

	ix := NewIndex()
	for _, it := range items {
		ix.Insert(it)
	}

	queries := []r2.Rect{
		rect(0, 0, 5, 5),
		rect(200, 200, 300, 300),
		rect(250, 250, 260, 260),
		rect(700, 700, 800, 800),
		rect(-100, -100, 0, 0),
		rect(0, 0, 1000, 1000),
		rect(500, 0, 501, 1000),
	}

	for i, q := range queries {
		t.Run(fmt.Sprintf("query_%d", i), func(t *testing.T) {
			want := make(map[string]bool)
			for _, it := range items {
				if it.bounds.Intersects(q) {
					want[it.name] = true
				}
			}
			got := names(ix.Search(q))
			if len(got) != len(want) {
				t.Fatalf("Search = %v, want %v", got, want)
			}
			for name := range want {
				if !got[name] {
					t.Errorf("missing %q in search result", name)
				}
			}
		})
	}
}

func TestIndexRemove(t *testing.T) {
	ix := NewIndex()
	a := &rectItem{name: "a", bounds: rect(0, 0, 10, 10)}
	b := &rectItem{name: "b", bounds: rect(5, 5, 15, 15)}
	ix.Insert(a)
	ix.Insert(b)

	ix.Remove(a)
	if ix.Len() != 1 {
		t.Fatalf("Len = %d after remove, want 1", ix.Len())
	}
	got := names(ix.Search(rect(0, 0, 20, 20)))
	if got["a"] || !got["b"] {
		t.Errorf("Search after remove = %v, want only b", got)
	}
}

func TestIndexRemoveAbsentIsNoOp(t *testing.T) {
	ix := NewIndex()
	a := &rectItem{name: "a", bounds: rect(0, 0, 10, 10)}
	ix.Insert(a)

	ix.Remove(&rectItem{name: "ghost", bounds: rect(0, 0, 10, 10)})
	if ix.Len() != 1 {
		t.Errorf("Len = %d, want 1", ix.Len())
	}
	ix.Remove(a)
	ix.Remove(a)
	if ix.Len() != 0 {
		t.Errorf("Len = %d after double remove, want 0", ix.Len())
	}
}

func TestIndexDuplicateInsertStacks(t *testing.T) {
	ix := NewIndex()
	a := &rectItem{name: "a", bounds: rect(0, 0, 10, 10)}
	ix.Insert(a)
	ix.Insert(a)

	if ix.Len() != 1 {
		t.Fatalf("Len = %d after duplicate insert, want 1", ix.Len())
	}
	if got := ix.Search(rect(0, 0, 20, 20)); len(got) != 1 {
		t.Fatalf("Search returned %d results, want 1 (no duplicates)", len(got))
	}

	// One remove undoes one insert; the item survives until the counts
	// balance.
	ix.Remove(a)
	if len(ix.Search(rect(0, 0, 20, 20))) != 1 {
		t.Error("item removed too early; duplicate insert should stack")
	}
	ix.Remove(a)
	if len(ix.Search(rect(0, 0, 20, 20))) != 0 {
		t.Error("item still present after balanced removes")
	}
}

func TestIndexBoundsCapturedAtInsert(t *testing.T) {
	ix := NewIndex()
	a := &rectItem{name: "a", bounds: rect(0, 0, 10, 10)}
	ix.Insert(a)

	// Mutating bounds after insert must not affect queries until the item
	// is re-inserted.
	a.bounds = rect(900, 900, 910, 910)
	if len(ix.Search(rect(0, 0, 20, 20))) != 1 {
		t.Error("item should still answer at its insert-time bounds")
	}
	if len(ix.Search(rect(890, 890, 920, 920))) != 0 {
		t.Error("item should not answer at its mutated bounds")
	}

	ix.Remove(a)
	ix.Insert(a)
	if len(ix.Search(rect(890, 890, 920, 920))) != 1 {
		t.Error("re-insert should pick up the new bounds")
	}
}

func TestIndexAll(t *testing.T) {
	ix := NewIndex()
	for i := 0; i < 5; i++ {
		ix.Insert(&rectItem{name: fmt.Sprintf("item_%d", i), bounds: rect(float64(i*100), 0, float64(i*100+10), 10)})
	}
	if got := len(ix.All()); got != 5 {
		t.Errorf("All returned %d items, want 5", got)
	}
}

func TestPageSet(t *testing.T) {
	ps := NewPageSet()

	// Lazy creation.
	if _, ok := ps.Lookup(3); ok {
		t.Error("Lookup should not create an index")
	}
	ix := ps.Page(3)
	if ix == nil {
		t.Fatal("Page returned nil index")
	}
	if got, ok := ps.Lookup(3); !ok || got != ix {
		t.Error("Lookup should return the same index Page created")
	}

	// Page normalization: 0 and -1 share page 1's index.
	p1 := ps.Page(0)
	if ps.Page(-1) != p1 || ps.Page(1) != p1 {
		t.Error("pages below 1 should normalize to page 1")
	}

	ps.Page(7)
	want := []int{1, 3, 7}
	got := ps.Pages()
	if len(got) != len(want) {
		t.Fatalf("Pages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Pages = %v, want %v", got, want)
		}
	}

	ps.Clear()
	if len(ps.Pages()) != 0 {
		t.Error("Clear should drop every page index")
	}
}
