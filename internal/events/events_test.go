package events

import "testing"

func TestEmitDeliversInSubscriptionOrder(t *testing.T) {
	e := NewEmitter()
	var got []int
	e.Subscribe("k", func(any) { got = append(got, 1) })
	e.Subscribe("k", func(any) { got = append(got, 2) })
	e.Subscribe("k", func(any) { got = append(got, 3) })

	e.Emit("k", nil)

	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("delivery order = %v, want [1 2 3]", got)
	}
}

func TestEmitPassesPayload(t *testing.T) {
	e := NewEmitter()
	var got any
	e.Subscribe("k", func(data any) { got = data })
	e.Emit("k", 42)
	if got != 42 {
		t.Errorf("payload = %v, want 42", got)
	}
}

func TestEmitKindIsolation(t *testing.T) {
	e := NewEmitter()
	calls := 0
	e.Subscribe("a", func(any) { calls++ })
	e.Emit("b", nil)
	if calls != 0 {
		t.Errorf("handler for %q ran on emit of %q", "a", "b")
	}
}

func TestUnsubscribe(t *testing.T) {
	e := NewEmitter()
	calls := 0
	unsub := e.Subscribe("k", func(any) { calls++ })

	e.Emit("k", nil)
	unsub()
	e.Emit("k", nil)
	unsub() // second call is a no-op

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	e := NewEmitter()
	var unsub func()
	first := 0
	second := 0
	e.Subscribe("k", func(any) {
		first++
		unsub()
	})
	unsub = e.Subscribe("k", func(any) { second++ })

	// The snapshot taken at emit time still includes the second handler.
	e.Emit("k", nil)
	if first != 1 || second != 1 {
		t.Fatalf("first = %d, second = %d, want 1, 1", first, second)
	}

	e.Emit("k", nil)
	if second != 1 {
		t.Errorf("second handler ran after unsubscribe, calls = %d", second)
	}
}

func TestSubscribeDuringDispatch(t *testing.T) {
	e := NewEmitter()
	late := 0
	e.Subscribe("k", func(any) {
		e.Subscribe("k", func(any) { late++ })
	})

	e.Emit("k", nil)
	if late != 0 {
		t.Error("handler subscribed during dispatch should not run in the same emit")
	}
	e.Emit("k", nil)
	if late != 1 {
		t.Errorf("late handler calls = %d, want 1", late)
	}
}
