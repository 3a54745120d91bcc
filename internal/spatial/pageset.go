package spatial

import (
	"sort"

	"github.com/penwell/penwell/internal/annotation"
)

// PageSet maps 1-indexed page numbers to their spatial indexes, creating
// each index lazily on first use. A PageSet is exclusively owned by one
// mode controller; it is not safe for concurrent mutation.
type PageSet struct {
	pages map[int]*Index
}

// NewPageSet returns an empty page set.
func NewPageSet() *PageSet {
	return &PageSet{pages: make(map[int]*Index)}
}

// Page returns the index for the given page, creating it if needed.
// Page values below 1 normalize to 1.
func (ps *PageSet) Page(page int) *Index {
	page = annotation.NormalizePage(page)
	ix, ok := ps.pages[page]
	if !ok {
		ix = NewIndex()
		ps.pages[page] = ix
	}
	return ix
}

// Lookup returns the index for the page without creating one.
func (ps *PageSet) Lookup(page int) (*Index, bool) {
	ix, ok := ps.pages[annotation.NormalizePage(page)]
	return ix, ok
}

// Pages returns the page numbers that have an index, in ascending order.
func (ps *PageSet) Pages() []int {
	out := make([]int, 0, len(ps.pages))
	for p := range ps.pages {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Each visits every page index in ascending page order.
func (ps *PageSet) Each(fn func(page int, ix *Index)) {
	for _, p := range ps.Pages() {
		fn(p, ps.pages[p])
	}
}

// Clear drops every page index.
func (ps *PageSet) Clear() {
	ps.pages = make(map[int]*Index)
}
