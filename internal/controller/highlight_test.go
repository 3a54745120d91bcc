package controller

import (
	"testing"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/pointer"
	"github.com/penwell/penwell/internal/store"
	"github.com/penwell/penwell/internal/thread"
)

func quadAt(minX, minY, maxX, maxY float64) annotation.QuadPoint {
	return annotation.QuadPoint{minX, minY, maxX, minY, maxX, maxY, minX, maxY}
}

func highlightAt(page int, minX, minY, maxX, maxY float64) annotation.Location {
	return annotation.HighlightLocation{
		Page:       page,
		QuadPoints: []annotation.QuadPoint{quadAt(minX, minY, maxX, maxY)},
	}
}

func TestHighlightModeSelection(t *testing.T) {
	clk := newTestClock()
	plain := NewHighlight(testConfig(clk, newStubLocator(), store.NewMock()), false)
	if plain.Mode() != annotation.TypeHighlight {
		t.Errorf("mode = %s, want highlight", plain.Mode())
	}
	commented := NewHighlight(testConfig(clk, newStubLocator(), store.NewMock()), true)
	if commented.Mode() != annotation.TypeHighlightComment {
		t.Errorf("mode = %s, want highlight-comment", commented.Mode())
	}
}

func TestHighlightHoverIsExclusive(t *testing.T) {
	clk := newTestClock()
	mock := store.NewMock()
	c := NewHighlight(testConfig(clk, newStubLocator(), mock), false)

	// Two overlapping highlights under the same pointer position.
	a := savedThread(t, clk, annotation.TypeHighlight, highlightAt(1, 0, 0, 50, 50), mock, "a")
	b := savedThread(t, clk, annotation.TypeHighlight, highlightAt(1, 10, 10, 60, 60), mock, "b")
	for _, th := range []*thread.Thread{a, b} {
		if err := c.RegisterThread(th); err != nil {
			t.Fatalf("RegisterThread: %v", err)
		}
	}
	c.Enter()

	c.HandlePointer(move(20, 20, 1))
	c.Tick(clk.Now())

	threads := []*thread.Thread{a, b}
	if got := countInState(threads, thread.StateHover); got != 1 {
		t.Errorf("hovering threads = %d, want exactly 1", got)
	}
	if got := countInState(threads, thread.StateInactive); got != 1 {
		t.Errorf("inactive threads = %d, want exactly 1", got)
	}
}

func TestHighlightHoverLeaveSettles(t *testing.T) {
	clk := newTestClock()
	mock := store.NewMock()
	c := NewHighlight(testConfig(clk, newStubLocator(), mock), false)
	a := savedThread(t, clk, annotation.TypeHighlight, highlightAt(1, 0, 0, 50, 50), mock, "a")
	if err := c.RegisterThread(a); err != nil {
		t.Fatalf("RegisterThread: %v", err)
	}
	c.Enter()

	c.HandlePointer(move(20, 20, 1))
	c.Tick(clk.Now())
	if a.State() != thread.StateHover {
		t.Fatalf("state = %s after move over highlight, want hover", a.State())
	}

	// Move off the highlight; the dialog survives the settle window.
	clk.Advance(pointer.DefaultMoveInterval)
	c.HandlePointer(move(500, 500, 1))
	c.Tick(clk.Now())
	if a.State() != thread.StateHover {
		t.Fatalf("state = %s right after leaving, want hover until settle", a.State())
	}

	clk.Advance(thread.HighlightHoverSettle)
	c.Tick(clk.Now())
	if a.State() != thread.StateInactive {
		t.Errorf("state = %s after settle window, want inactive", a.State())
	}
}

func TestHighlightMoveThrottling(t *testing.T) {
	clk := newTestClock()
	mock := store.NewMock()
	c := NewHighlight(testConfig(clk, newStubLocator(), mock), false)
	a := savedThread(t, clk, annotation.TypeHighlight, highlightAt(1, 0, 0, 50, 50), mock, "a")
	b := savedThread(t, clk, annotation.TypeHighlight, highlightAt(1, 200, 200, 250, 250), mock, "b")
	for _, th := range []*thread.Thread{a, b} {
		if err := c.RegisterThread(th); err != nil {
			t.Fatalf("RegisterThread: %v", err)
		}
	}
	c.Enter()

	c.HandlePointer(move(20, 20, 1))
	c.Tick(clk.Now())
	if a.State() != thread.StateHover {
		t.Fatalf("state = %s, want hover on first drained move", a.State())
	}

	// A move inside the throttle interval is cached, not processed.
	c.HandlePointer(move(220, 220, 1))
	c.Tick(clk.Now())
	if b.State() != thread.StateInactive {
		t.Fatal("second move processed inside the throttle interval")
	}

	clk.Advance(pointer.DefaultMoveInterval)
	c.Tick(clk.Now())
	if b.State() != thread.StateHover {
		t.Errorf("state = %s after interval, want hover from the cached move", b.State())
	}
}

func TestHighlightDownSelectsPreciseHit(t *testing.T) {
	clk := newTestClock()
	mock := store.NewMock()
	c := NewHighlight(testConfig(clk, newStubLocator(), mock), false)
	a := savedThread(t, clk, annotation.TypeHighlight, highlightAt(1, 0, 0, 50, 50), mock, "a")
	if err := c.RegisterThread(a); err != nil {
		t.Fatalf("RegisterThread: %v", err)
	}
	c.Enter()

	// Inside the bounding box tolerance but outside the quad: no hit.
	c.HandlePointer(down(53, 53, 1))
	if a.State() != thread.StateInactive {
		t.Errorf("state = %s after near-miss click, want inactive", a.State())
	}

	c.HandlePointer(down(25, 25, 1))
	if a.State() != thread.StateHover {
		t.Errorf("state = %s after click, want hover (highlights never go active)", a.State())
	}
}

func TestHighlightCreateThread(t *testing.T) {
	clk := newTestClock()
	c := NewHighlight(testConfig(clk, newStubLocator(), store.NewMock()), true)

	th := c.CreateThread(0, []annotation.QuadPoint{quadAt(10, 10, 90, 20)}, annotation.Dimensions{X: 612, Y: 792})
	if th == nil {
		t.Fatal("CreateThread returned nil")
	}
	if th.Type() != annotation.TypeHighlightComment {
		t.Errorf("type = %s, want highlight-comment", th.Type())
	}
	loc := th.Location().(annotation.HighlightLocation)
	if loc.Page != 1 {
		t.Errorf("page = %d, want normalized 1", loc.Page)
	}
	if len(c.Threads()) != 1 {
		t.Error("created thread should be registered")
	}

	if th := c.CreateThread(1, nil, annotation.Dimensions{}); th != nil {
		t.Error("CreateThread without quads should be rejected")
	}
}
