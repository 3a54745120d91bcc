package pointer

import "testing"

func TestDragClampsOversizedGesture(t *testing.T) {
	var d DragTracker
	d.Start(0, 0, 1000, 1000)

	rect, staged := d.Stop(1500, 1500)
	if !staged {
		t.Fatal("long drag should stage a rect")
	}
	want := Rect{X: 1, Y: 1, Width: 998, Height: 998}
	if rect != want {
		t.Fatalf("staged rect = %+v, want %+v", rect, want)
	}

	scaled := rect.ScaleDown(10)
	wantScaled := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	if scaled != wantScaled {
		t.Errorf("ScaleDown(10) = %+v, want %+v", scaled, wantScaled)
	}
}

func TestDragEnforcesMinimumSize(t *testing.T) {
	var d DragTracker
	d.Start(100, 100, 1000, 1000)

	rect, staged := d.Stop(105, 105)
	if !staged {
		t.Fatal("gesture at the click threshold should stage")
	}
	want := Rect{X: 100, Y: 100, Width: 10, Height: 10}
	if rect != want {
		t.Fatalf("staged rect = %+v, want %+v", rect, want)
	}

	scaled := rect.ScaleDown(10)
	wantScaled := Rect{X: 10, Y: 10, Width: 1, Height: 1}
	if scaled != wantScaled {
		t.Errorf("ScaleDown(10) = %+v, want %+v", scaled, wantScaled)
	}
}

func TestDragAbortsClicks(t *testing.T) {
	var d DragTracker
	d.Start(100, 100, 1000, 1000)

	if _, staged := d.Stop(103, 103); staged {
		t.Error("sub-threshold gesture should abort, not stage")
	}
	if d.State() != DragIdle {
		t.Errorf("state = %v after abort, want DragIdle", d.State())
	}
}

func TestDragMove(t *testing.T) {
	var d DragTracker

	if _, ok := d.Move(10, 10); ok {
		t.Error("Move with no active gesture should return false")
	}

	d.Start(200, 200, 1000, 1000)
	rect, ok := d.Move(300, 260)
	if !ok {
		t.Fatal("Move during gesture should report the live rect")
	}
	want := Rect{X: 200, Y: 200, Width: 100, Height: 60}
	if rect != want {
		t.Errorf("live rect = %+v, want %+v", rect, want)
	}

	// Dragging up-left swaps the anchor corner.
	rect, _ = d.Move(150, 120)
	want = Rect{X: 150, Y: 120, Width: 50, Height: 80}
	if rect != want {
		t.Errorf("reversed rect = %+v, want %+v", rect, want)
	}
}

func TestDragReset(t *testing.T) {
	var d DragTracker
	d.Start(0, 0, 1000, 1000)
	d.Stop(500, 500)
	d.Reset()
	if d.State() != DragIdle {
		t.Errorf("state = %v after Reset, want DragIdle", d.State())
	}
	if d.Rect() != (Rect{}) {
		t.Errorf("rect = %+v after Reset, want zero", d.Rect())
	}
}

func TestScaleDownGuardsScale(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	if got := r.ScaleDown(0); got != r {
		t.Errorf("ScaleDown(0) = %+v, want unchanged rect", got)
	}
}
