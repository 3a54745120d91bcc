package controller

import (
	"math"
	"testing"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/store"
	"github.com/penwell/penwell/internal/thread"
)

func TestPointDownCreatesPendingThread(t *testing.T) {
	clk := newTestClock()
	c := NewPoint(testConfig(clk, newStubLocator(), store.NewMock()))
	c.Enter()

	c.HandlePointer(down(120, 340, 2))

	threads := c.Threads()
	if len(threads) != 1 {
		t.Fatalf("Threads = %d, want 1", len(threads))
	}
	th := threads[0]
	if th.State() != thread.StatePending {
		t.Errorf("state = %s, want pending", th.State())
	}
	loc, ok := th.Location().(annotation.PointLocation)
	if !ok {
		t.Fatalf("location = %T, want PointLocation", th.Location())
	}
	if loc.X != 120 || loc.Y != 340 || loc.Page != 2 {
		t.Errorf("location = %+v, want (120, 340) on page 2", loc)
	}
	if loc.Dimensions.IsZero() {
		t.Error("location should record page dimensions")
	}
}

func TestPointSecondDownConsumesPending(t *testing.T) {
	clk := newTestClock()
	c := NewPoint(testConfig(clk, newStubLocator(), store.NewMock()))
	c.Enter()

	c.HandlePointer(down(100, 100, 1))
	first := c.Threads()[0]

	// The second click cleans up the open dialog instead of stacking a
	// second pending thread.
	c.HandlePointer(down(500, 500, 1))
	if first.State() != thread.StateDestroyed {
		t.Errorf("first thread state = %s, want destroyed", first.State())
	}
	if got := len(c.Threads()); got != 0 {
		t.Errorf("Threads = %d after consuming click, want 0", got)
	}

	// The next click creates again.
	c.HandlePointer(down(500, 500, 1))
	if got := len(c.Threads()); got != 1 {
		t.Errorf("Threads = %d after third click, want 1", got)
	}
}

func TestPointDownSelectsExistingThread(t *testing.T) {
	clk := newTestClock()
	mock := store.NewMock()
	c := NewPoint(testConfig(clk, newStubLocator(), mock))
	a := savedThread(t, clk, annotation.TypePoint, pointAt(100, 100, 1), mock, "a")
	b := savedThread(t, clk, annotation.TypePoint, pointAt(102, 102, 1), mock, "b")
	for _, th := range []*thread.Thread{a, b} {
		if err := c.RegisterThread(th); err != nil {
			t.Fatalf("RegisterThread: %v", err)
		}
	}
	c.Enter()

	c.HandlePointer(down(101, 101, 1))

	threads := c.Threads()
	if got := len(threads); got != 2 {
		t.Fatalf("Threads = %d, want 2 (selection creates nothing)", got)
	}
	if countInState(threads, thread.StateActive) != 1 {
		t.Errorf("active threads = %d, want exactly 1", countInState(threads, thread.StateActive))
	}
	if countInState(threads, thread.StateInactive) != 1 {
		t.Errorf("inactive threads = %d, want exactly 1", countInState(threads, thread.StateInactive))
	}
}

func TestPointCreateThreadRejectsNaN(t *testing.T) {
	clk := newTestClock()
	c := NewPoint(testConfig(clk, newStubLocator(), store.NewMock()))

	if th := c.CreateThread(DocPoint{X: math.NaN(), Y: 10, Page: 1}); th != nil {
		t.Error("NaN coordinates should create nothing")
	}
	if got := len(c.Threads()); got != 0 {
		t.Errorf("Threads = %d, want 0", got)
	}
}
