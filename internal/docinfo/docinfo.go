// Package docinfo reads page geometry out of PDF files. The engine needs
// each page's unscaled size to seed annotation dimensions and to validate
// stored locations; a docinfo.Document can also back a headless Viewer for
// the CLI and tests.
package docinfo

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/penwell/penwell/internal/annotation"
)

// PageInfo is one page's geometry in PDF user-space units.
type PageInfo struct {
	Page   int
	Width  float64
	Height float64
}

// Document is the page geometry of one PDF.
type Document struct {
	Path  string
	Pages []PageInfo
}

// Load reads page count and per-page dimensions from a PDF file.
func Load(path string) (*Document, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page count: %w", err)
	}
	dims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}
	if len(dims) != count {
		return nil, fmt.Errorf("page dims mismatch: %d pages, %d dims", count, len(dims))
	}

	doc := &Document{Path: path, Pages: make([]PageInfo, 0, count)}
	for i, d := range dims {
		doc.Pages = append(doc.Pages, PageInfo{
			Page:   i + 1,
			Width:  d.Width,
			Height: d.Height,
		})
	}
	return doc, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.Pages) }

// Page returns the geometry for a 1-indexed page.
func (d *Document) Page(page int) (PageInfo, bool) {
	page = annotation.NormalizePage(page)
	if page > len(d.Pages) {
		return PageInfo{}, false
	}
	return d.Pages[page-1], true
}

// Dimensions returns a page's unscaled annotation dimensions.
func (d *Document) Dimensions(page int) (annotation.Dimensions, bool) {
	p, ok := d.Page(page)
	if !ok {
		return annotation.Dimensions{}, false
	}
	return annotation.Dimensions{X: p.Width, Y: p.Height}, true
}

// Viewer adapts the document to the annotator's Viewer interface at a
// fixed zoom scale.
type Viewer struct {
	Doc     *Document
	Scale   float64
	Padding float64
}

// Zoom implements annotator.Viewer.
func (v *Viewer) Zoom() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}

// PageSize implements annotator.Viewer.
func (v *Viewer) PageSize(page int) (w, h float64, ok bool) {
	p, ok := v.Doc.Page(page)
	if !ok {
		return 0, 0, false
	}
	return p.Width * v.Zoom(), p.Height*v.Zoom() + v.Padding, true
}

// VerticalPadding implements annotator.Viewer.
func (v *Viewer) VerticalPadding() float64 { return v.Padding }

// Rotation implements annotator.Viewer.
func (v *Viewer) Rotation() int { return 0 }
