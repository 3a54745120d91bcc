// Package events provides the small publish/subscribe primitive that
// threads, controllers, and the annotator use to surface lifecycle events.
// Components hold an Emitter rather than inheriting emitter behavior.
package events

import "sync"

// Handler receives the event payload.
type Handler func(data any)

// Emitter dispatches events by kind. Handlers for one kind run in
// subscription order; unsubscribing during dispatch is safe.
type Emitter struct {
	mu       sync.Mutex
	nextID   int
	handlers map[string]map[int]Handler
	order    map[string][]int
}

// NewEmitter returns an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{
		handlers: make(map[string]map[int]Handler),
		order:    make(map[string][]int),
	}
}

// Subscribe registers a handler for the event kind and returns a function
// that removes it. Calling the returned function more than once is a no-op.
func (e *Emitter) Subscribe(kind string, fn Handler) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextID
	e.nextID++
	if e.handlers[kind] == nil {
		e.handlers[kind] = make(map[int]Handler)
	}
	e.handlers[kind][id] = fn
	e.order[kind] = append(e.order[kind], id)

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.handlers[kind], id)
	}
}

// Emit delivers data to every handler subscribed to kind. Handlers run
// outside the emitter lock so they may subscribe or unsubscribe freely.
func (e *Emitter) Emit(kind string, data any) {
	e.mu.Lock()
	ids := e.order[kind]
	snapshot := make([]Handler, 0, len(ids))
	live := ids[:0]
	for _, id := range ids {
		if fn, ok := e.handlers[kind][id]; ok {
			snapshot = append(snapshot, fn)
			live = append(live, id)
		}
	}
	e.order[kind] = live
	e.mu.Unlock()

	for _, fn := range snapshot {
		fn(data)
	}
}
