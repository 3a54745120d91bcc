package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/events"
	"github.com/penwell/penwell/internal/geometry"
	"github.com/penwell/penwell/internal/messages"
	"github.com/penwell/penwell/internal/pointer"
	"github.com/penwell/penwell/internal/spatial"
	"github.com/penwell/penwell/internal/store"
	"github.com/penwell/penwell/internal/thread"
)

// binding is one pointer handler a mode attaches while active.
type binding struct {
	kind pointer.Kind
	fn   func(pointer.Event)
}

// Config configures a mode controller.
type Config struct {
	// FileID scopes created annotations.
	FileID string
	// Store persists annotations for threads this controller creates.
	Store store.Store
	// Locator resolves pointer events; required.
	Locator Locator
	// Binder attaches mode handlers; required.
	Binder Binder
	// Clock defaults to time.Now.
	Clock pointer.Clock
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// base carries the state and behavior shared by every mode controller.
// Mode-specific controllers embed it and supply their bindings and pointer
// handling.
type base struct {
	mode    annotation.Type
	fileID  string
	store   store.Store
	locator Locator
	binder  Binder
	clock   pointer.Clock
	logger  *slog.Logger
	emitter *events.Emitter
	// resolve maps an event into the coordinate space this mode's
	// locations are stored in. Defaults to document space; region mode
	// swaps in the unscaled pixel space.
	resolve func(pointer.Event) (DocPoint, bool)

	mu         sync.Mutex
	threads    *spatial.PageSet
	subs       map[*thread.Thread]func()
	unbinds    []func()
	enabled    bool
	hadPending bool
	destroyed  bool
}

// init populates the embedded base in place. base carries a mutex, so it is
// initialized through the embedding controller's pointer rather than
// returned by value.
func (b *base) init(mode annotation.Type, cfg Config) {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	b.mode = mode
	b.fileID = cfg.FileID
	b.store = cfg.Store
	b.locator = cfg.Locator
	b.binder = cfg.Binder
	b.clock = cfg.Clock
	b.logger = cfg.Logger
	b.emitter = events.NewEmitter()
	b.threads = spatial.NewPageSet()
	b.subs = make(map[*thread.Thread]func())
	if cfg.Locator != nil {
		b.resolve = cfg.Locator.LocationFromEvent
	}
}

// Mode returns the annotation type this controller owns.
func (b *base) Mode() annotation.Type { return b.mode }

// Enabled reports whether the mode is active.
func (b *base) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// Subscribe registers a handler for a controller event kind.
func (b *base) Subscribe(kind string, fn events.Handler) (unsubscribe func()) {
	return b.emitter.Subscribe(kind, fn)
}

// RegisterThread validates the thread's location and bounds, indexes it
// under its (defaulted) page, and subscribes to its lifecycle events.
// Registering an already registered thread is a no-op, which keeps
// register/unregister symmetric for the index.
func (b *base) RegisterThread(t *thread.Thread) error {
	if t == nil {
		return errors.New("nil thread")
	}
	if t.Location() == nil {
		return errors.New("thread has no location")
	}
	if !geometry.RectValid(t.Bounds()) {
		return fmt.Errorf("thread %s has invalid bounds", t.ID())
	}

	b.mu.Lock()
	if _, registered := b.subs[t]; registered {
		b.mu.Unlock()
		return nil
	}
	page := t.Location().PageNumber()
	b.threads.Page(page).Insert(t)
	unsub := t.Subscribe(thread.EventGeneric, func(data any) {
		p, ok := data.(thread.Payload)
		if !ok {
			return
		}
		b.handleThreadEvents(t, p)
	})
	b.subs[t] = unsub
	if t.State().IsPending() {
		b.hadPending = true
	}
	b.mu.Unlock()

	b.emit(EventRegister, t)
	return nil
}

// UnregisterThread removes the thread from its page index and drops the
// lifecycle subscription. No-op when the thread is absent or has no
// location.
func (b *base) UnregisterThread(t *thread.Thread) {
	if t == nil || t.Location() == nil {
		return
	}
	b.mu.Lock()
	unsub, registered := b.subs[t]
	if !registered {
		b.mu.Unlock()
		return
	}
	delete(b.subs, t)
	if ix, ok := b.threads.Lookup(t.Location().PageNumber()); ok {
		ix.Remove(t)
	}
	b.mu.Unlock()

	unsub()
	b.emit(EventUnregister, t)
}

// Threads returns every registered thread across all pages.
func (b *base) Threads() []*thread.Thread {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*thread.Thread
	b.threads.Each(func(_ int, ix *spatial.Index) {
		for _, item := range ix.All() {
			if t, ok := item.(*thread.Thread); ok {
				out = append(out, t)
			}
		}
	})
	return out
}

// IntersectingThreads resolves the event to a location and queries the
// page's index with a box of side 2×BorderOffset centered on it. Returns
// nil when the location cannot be resolved or the page has no index.
func (b *base) IntersectingThreads(ev pointer.Event) []*thread.Thread {
	if b.resolve == nil {
		return nil
	}
	loc, ok := b.resolve(ev)
	if !ok {
		return nil
	}
	b.mu.Lock()
	ix, ok := b.threads.Lookup(loc.Page)
	if !ok {
		b.mu.Unlock()
		return nil
	}
	query := geometry.RectFromBounds(
		loc.X-BorderOffset, loc.Y-BorderOffset,
		loc.X+BorderOffset, loc.Y+BorderOffset,
	)
	items := ix.Search(query)
	b.mu.Unlock()

	out := make([]*thread.Thread, 0, len(items))
	for _, item := range items {
		if t, ok := item.(*thread.Thread); ok {
			out = append(out, t)
		}
	}
	return out
}

// DestroyPendingThreads destroys every thread in a pending-family state and
// reports whether any was found. Callers use the result to decide whether a
// click was consumed by the cleanup.
func (b *base) DestroyPendingThreads() bool {
	found := false
	for _, t := range b.Threads() {
		if t.State().IsPending() {
			found = true
			t.Destroy()
		}
	}
	b.mu.Lock()
	b.hadPending = false
	b.mu.Unlock()
	return found
}

// HadPendingAndClear returns whether a pending thread existed since the
// last check, clearing the flag.
func (b *base) HadPendingAndClear() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	had := b.hadPending
	b.hadPending = false
	return had
}

// handleThreadEvents is the central relay for thread lifecycle events.
func (b *base) handleThreadEvents(t *thread.Thread, p thread.Payload) {
	switch p.Event {
	case thread.EventSave, thread.EventCancel:
		b.mu.Lock()
		b.hadPending = false
		b.mu.Unlock()
		b.emit(p.Event, p)
	case thread.EventCleanup, thread.EventThreadDelete:
		b.UnregisterThread(t)
		b.emit(p.Event, p)
	case thread.EventCreateError, thread.EventDeleteError:
		b.emitter.Emit(EventError, ErrorPayload{Message: p.Message, Err: p.Err})
		b.emit(p.Event, p)
	default:
		b.emit(p.Event, p)
	}
}

// emit delivers the named event and re-broadcasts it on EventController.
func (b *base) emit(kind string, data any) {
	b.emitter.Emit(kind, data)
	b.emitter.Emit(EventController, Payload{Event: kind, Mode: b.mode, Data: data})
}

// enter flips the mode active and binds the given handlers, emitting
// EventEnter first so the annotator can exit every other mode.
func (b *base) enter(bindings []binding) {
	b.mu.Lock()
	if b.enabled || b.destroyed {
		b.mu.Unlock()
		return
	}
	b.enabled = true
	b.mu.Unlock()

	b.emit(EventEnter, b.mode)

	b.mu.Lock()
	for _, bd := range bindings {
		b.unbinds = append(b.unbinds, b.binder.Bind(b.mode, bd.kind, bd.fn))
	}
	b.mu.Unlock()
}

// exit destroys pending threads and unbinds every handler registered at
// enter time. Safe to call when the mode never entered.
func (b *base) exit() {
	b.mu.Lock()
	wasEnabled := b.enabled
	b.enabled = false
	unbinds := b.unbinds
	b.unbinds = nil
	b.mu.Unlock()

	b.DestroyPendingThreads()
	for _, unbind := range unbinds {
		unbind()
	}
	if wasEnabled {
		b.emit(EventExit, b.mode)
	}
}

// destroyAll tears down every thread and clears the indexes. Idempotent.
func (b *base) destroyAll() {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return
	}
	b.destroyed = true
	b.mu.Unlock()

	for _, t := range b.Threads() {
		t.Destroy()
	}

	b.mu.Lock()
	unsubs := make([]func(), 0, len(b.subs))
	for t, unsub := range b.subs {
		delete(b.subs, t)
		unsubs = append(unsubs, unsub)
	}
	b.threads.Clear()
	b.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
}

// newThread builds and registers a pending thread for this controller's
// mode at the given location. Validation failures emit EventError and
// register nothing.
func (b *base) newThread(loc annotation.Location) (*thread.Thread, error) {
	t, err := thread.New(thread.Config{
		Type:     b.mode,
		Location: loc,
		FileID:   b.fileID,
		Store:    b.store,
		Clock:    b.clock,
		Logger:   b.logger,
	})
	if err != nil {
		b.logger.Warn("thread creation rejected", "mode", b.mode, "error", err)
		b.emitter.Emit(EventError, ErrorPayload{Message: messages.Get(messages.CreateError), Err: err})
		return nil, err
	}
	if err := b.RegisterThread(t); err != nil {
		return nil, err
	}
	return t, nil
}
