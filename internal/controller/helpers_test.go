package controller

import (
	"sync"
	"testing"
	"time"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/pointer"
	"github.com/penwell/penwell/internal/store"
	"github.com/penwell/penwell/internal/thread"
)

// testClock is a manually advanced clock shared by a controller and its
// threads.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// stubLocator maps pointer events straight into document space so test
// coordinates read literally. UnscaledPoint divides by zoom like the real
// locator.
type stubLocator struct {
	zoom  float64
	pageW float64
	pageH float64
	// dimsByPage overrides the reported dimensions for specific pages.
	dimsByPage map[int]annotation.Dimensions
}

func newStubLocator() *stubLocator {
	return &stubLocator{zoom: 1, pageW: 1000, pageH: 1000}
}

func (l *stubLocator) dims(page int) annotation.Dimensions {
	if d, ok := l.dimsByPage[page]; ok {
		return d
	}
	return annotation.Dimensions{X: l.pageW, Y: l.pageH}
}

func (l *stubLocator) LocationFromEvent(ev pointer.Event) (DocPoint, bool) {
	page := annotation.NormalizePage(ev.Page)
	return DocPoint{
		X:          ev.X,
		Y:          ev.Y,
		Page:       page,
		Dimensions: l.dims(page),
	}, true
}

func (l *stubLocator) UnscaledPoint(ev pointer.Event) (DocPoint, bool) {
	return DocPoint{
		X:          ev.X / l.zoom,
		Y:          ev.Y / l.zoom,
		Page:       annotation.NormalizePage(ev.Page),
		Dimensions: annotation.Dimensions{X: l.pageW, Y: l.pageH},
	}, true
}

func (l *stubLocator) PageSize(int) (float64, float64, bool) {
	return l.pageW, l.pageH, true
}

func (l *stubLocator) Zoom() float64 { return l.zoom }

// recordBinder tracks live bindings so tests can assert bind/unbind
// symmetry.
type recordBinder struct {
	mu    sync.Mutex
	bound []*binding
}

func (b *recordBinder) Bind(_ annotation.Type, kind pointer.Kind, fn func(pointer.Event)) func() {
	bd := &binding{kind: kind, fn: fn}
	b.mu.Lock()
	b.bound = append(b.bound, bd)
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, other := range b.bound {
			if other == bd {
				b.bound = append(b.bound[:i], b.bound[i+1:]...)
				return
			}
		}
	}
}

func (b *recordBinder) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.bound)
}

func testConfig(clk *testClock, loc *stubLocator, s store.Store) Config {
	return Config{
		FileID:  "file-1",
		Store:   s,
		Locator: loc,
		Binder:  &recordBinder{},
		Clock:   clk.Now,
	}
}

func down(x, y float64, page int) pointer.Event {
	return pointer.Event{Kind: pointer.Down, X: x, Y: y, Page: page}
}

func move(x, y float64, page int) pointer.Event {
	return pointer.Event{Kind: pointer.Move, X: x, Y: y, Page: page}
}

func up(x, y float64, page int) pointer.Event {
	return pointer.Event{Kind: pointer.Up, X: x, Y: y, Page: page}
}

// savedThread builds a hydrated (persisted) thread for registration tests.
func savedThread(t *testing.T, clk *testClock, typ annotation.Type, loc annotation.Location, s store.Store, name string) *thread.Thread {
	t.Helper()
	th, err := thread.New(thread.Config{
		Type:     typ,
		Location: loc,
		FileID:   "file-1",
		Store:    s,
		Annotations: []annotation.Annotation{
			{ID: "a-" + name, ThreadID: "t-" + name, Permissions: annotation.Permissions{CanDelete: true}},
		},
		Clock: clk.Now,
	})
	if err != nil {
		t.Fatalf("thread.New: %v", err)
	}
	return th
}

func countInState(threads []*thread.Thread, s thread.State) int {
	n := 0
	for _, th := range threads {
		if th.State() == s {
			n++
		}
	}
	return n
}
