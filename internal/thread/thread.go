// Package thread implements the annotation thread aggregate: one logical
// annotation (and its stacked comments) anchored at a fixed location, with
// the state machine that governs its life from pending creation through
// hover, activation, and deletion.
package thread

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/events"
	"github.com/penwell/penwell/internal/geometry"
	"github.com/penwell/penwell/internal/messages"
	"github.com/penwell/penwell/internal/pointer"
	"github.com/penwell/penwell/internal/store"
)

// Thread lifecycle event kinds. Every named event is also re-emitted as
// EventGeneric so one upstream listener can observe a thread uniformly.
const (
	EventSave         = "save"
	EventCancel       = "cancel"
	EventDelete       = "delete"
	EventCleanup      = "threadCleanup"
	EventThreadDelete = "threadDelete"
	EventCreateError  = "createError"
	EventDeleteError  = "deleteError"
	EventGeneric      = "threadevent"
)

// ErrDestroyed is returned by mutating calls on a destroyed thread.
var ErrDestroyed = errors.New("thread destroyed")

// ErrNotPermitted is returned when the annotation's permissions forbid the
// requested mutation.
var ErrNotPermitted = errors.New("operation not permitted")

// Payload is the data carried by every thread event.
type Payload struct {
	Event    string
	ThreadID string
	// Annotation is set for save/delete events.
	Annotation *annotation.Annotation
	// Message is the user-visible string for error events.
	Message string
	// Err is the underlying error for error events.
	Err error
}

// Config configures a new thread.
type Config struct {
	// Type is the annotation kind; required.
	Type annotation.Type
	// Location anchors the thread; required and immutable for the thread's
	// lifetime.
	Location annotation.Location
	// FileID is the file the thread belongs to.
	FileID string
	// Store persists annotations; required for Save/Delete.
	Store store.Store
	// Annotations hydrates a thread from persisted state. Empty means the
	// thread starts pending.
	Annotations []annotation.Annotation
	// Clock defaults to time.Now.
	Clock pointer.Clock
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Thread is the aggregate root for one visible mark. Safe for use from the
// host event loop plus the async persistence callbacks.
type Thread struct {
	id       string
	typ      annotation.Type
	loc      annotation.Location
	fileID   string
	bounds   r2.Rect
	behavior Behavior
	store    store.Store
	clock    pointer.Clock
	logger   *slog.Logger
	emitter  *events.Emitter

	mu      sync.Mutex
	state   State
	order   []string
	anns    map[string]annotation.Annotation
	visible bool
	settle  pointer.SettleTimer
}

// New creates a thread. The location must be present with finite bounds;
// threads with invalid geometry are rejected here so nothing broken ever
// reaches a spatial index.
func New(cfg Config) (*Thread, error) {
	if !cfg.Type.Valid() {
		return nil, fmt.Errorf("invalid annotation type %q", cfg.Type)
	}
	if cfg.Location == nil {
		return nil, errors.New("thread requires a location")
	}
	bounds, ok := geometry.LocationBounds(cfg.Location)
	if !ok || !geometry.RectValid(bounds) {
		return nil, fmt.Errorf("location for %s thread has invalid bounds", cfg.Type)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	t := &Thread{
		id:       uuid.New().String(),
		typ:      cfg.Type,
		loc:      cfg.Location,
		fileID:   cfg.FileID,
		bounds:   bounds,
		behavior: behaviorFor(cfg.Type),
		store:    cfg.Store,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		emitter:  events.NewEmitter(),
		state:    StatePending,
		anns:     make(map[string]annotation.Annotation),
		visible:  true,
	}

	for _, ann := range cfg.Annotations {
		if ann.ID == "" {
			continue
		}
		if ann.ThreadID != "" {
			t.id = ann.ThreadID
		}
		if _, dup := t.anns[ann.ID]; !dup {
			t.order = append(t.order, ann.ID)
		}
		t.anns[ann.ID] = ann
	}
	if len(t.order) > 0 {
		t.state = StateInactive
	}
	return t, nil
}

// ID returns the thread ID.
func (t *Thread) ID() string { return t.id }

// Type returns the annotation kind.
func (t *Thread) Type() annotation.Type { return t.typ }

// Location returns the immutable location.
func (t *Thread) Location() annotation.Location { return t.loc }

// Bounds returns the cached bounding rect; Thread implements spatial.Item.
func (t *Thread) Bounds() r2.Rect { return t.bounds }

// State returns the current lifecycle state.
func (t *Thread) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Annotations returns the thread's annotations in conversation order.
func (t *Thread) Annotations() []annotation.Annotation {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]annotation.Annotation, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.anns[id])
	}
	return out
}

// IsPlain reports whether the thread is a plain mark: it has no persisted
// comment text. An unsaved highlight counts as plain unless it was started
// in highlight-comment mode.
func (t *Thread) IsPlain() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.plainLocked()
}

func (t *Thread) plainLocked() bool {
	if len(t.order) == 0 {
		return t.typ == annotation.TypeHighlight
	}
	return t.anns[t.order[0]].Text == ""
}

// Subscribe registers a handler for a thread event kind.
func (t *Thread) Subscribe(kind string, fn events.Handler) (unsubscribe func()) {
	return t.emitter.Subscribe(kind, fn)
}

// Visible reports whether the mark should render.
func (t *Thread) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// Show marks the thread renderable.
func (t *Thread) Show() {
	t.mu.Lock()
	t.visible = true
	t.mu.Unlock()
}

// Hide suppresses rendering and closes any open dialog.
func (t *Thread) Hide() {
	t.mu.Lock()
	t.visible = false
	if t.state == StateHover || t.state == StateActive || t.state == StateActiveActive {
		t.state = StateInactive
	}
	t.mu.Unlock()
}

// HitTest refines a coarse bounding-box hit using the kind's precise
// geometry, in document-space coordinates.
func (t *Thread) HitTest(x, y float64) bool {
	return t.behavior.HitTest(t.loc, x, y)
}

// Save posts text as a new annotation on this thread. A pending thread
// moves to hover on success. Failures emit a createError event carrying a
// user-visible message and leave the thread's state unchanged.
func (t *Thread) Save(ctx context.Context, text string) error {
	t.mu.Lock()
	if t.state == StateDestroyed {
		t.mu.Unlock()
		return ErrDestroyed
	}
	ann := annotation.Annotation{
		ThreadID: t.id,
		FileID:   t.fileID,
		Type:     t.typ,
		Text:     text,
		Location: t.loc,
	}
	t.mu.Unlock()

	created, err := t.store.Create(ctx, ann)
	if err != nil {
		t.logger.Error("annotation create failed", "thread_id", t.id, "type", t.typ, "error", err)
		t.emit(EventCreateError, Payload{
			ThreadID: t.id,
			Message:  messages.Get(messages.CreateError),
			Err:      err,
		})
		return fmt.Errorf("saving annotation: %w", err)
	}

	t.mu.Lock()
	if t.state == StateDestroyed {
		t.mu.Unlock()
		return ErrDestroyed
	}
	if _, dup := t.anns[created.ID]; !dup {
		t.order = append(t.order, created.ID)
	}
	t.anns[created.ID] = created
	if s, ok := next(t.state, TriggerSave, t.behavior.ActiveState()); ok {
		t.state = s
	}
	t.mu.Unlock()

	t.emit(EventSave, Payload{ThreadID: t.id, Annotation: &created})
	return nil
}

// SaveAsync runs Save on its own goroutine; outcomes surface only through
// the save/createError events.
func (t *Thread) SaveAsync(ctx context.Context, text string) {
	go func() {
		_ = t.Save(ctx, text)
	}()
}

// CancelFirstComment cancels comment entry. A pending thread with no
// persisted annotations is destroyed, except plain highlights which toggle
// back to the lighter highlight dialog. A re-opened thread with prior
// annotations just resets its view.
func (t *Thread) CancelFirstComment() {
	t.mu.Lock()
	if t.state == StateDestroyed {
		t.mu.Unlock()
		return
	}
	if len(t.order) == 0 {
		if t.behavior.CancelFirstDestroys(t.plainLocked()) {
			if s, ok := next(t.state, TriggerCancelEmpty, t.behavior.ActiveState()); ok {
				t.state = s
			}
			destroyed := t.state == StateDestroyed
			t.mu.Unlock()
			t.emit(EventCancel, Payload{ThreadID: t.id})
			if destroyed {
				t.emit(EventCleanup, Payload{ThreadID: t.id})
			}
			return
		}
		t.state = StateInactive
		t.mu.Unlock()
		t.emit(EventCancel, Payload{ThreadID: t.id})
		return
	}
	if s, ok := next(t.state, TriggerCancelWithPriors, t.behavior.ActiveState()); ok {
		t.state = s
	}
	t.mu.Unlock()
	t.emit(EventCancel, Payload{ThreadID: t.id})
}

// Delete removes one annotation. Deleting the last annotation destroys the
// thread; deleting one of several siblings soft-deletes and leaves the
// thread inactive. The annotation is removed locally before the store call,
// but the state transition only applies once persistence succeeds: a failed
// delete emits deleteError and leaves the state alone, so a thread never
// reaches destroyed while still registered with its controller.
func (t *Thread) Delete(ctx context.Context, annotationID string) error {
	t.mu.Lock()
	if t.state == StateDestroyed {
		t.mu.Unlock()
		return ErrDestroyed
	}
	ann, ok := t.anns[annotationID]
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("annotation %s not found on thread %s", annotationID, t.id)
	}
	if !ann.Permissions.CanDelete {
		t.mu.Unlock()
		t.emit(EventDeleteError, Payload{
			ThreadID: t.id,
			Message:  messages.Get(messages.DeleteError),
			Err:      ErrNotPermitted,
		})
		return ErrNotPermitted
	}

	delete(t.anns, annotationID)
	for i, id := range t.order {
		if id == annotationID {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}

	trigger := TriggerDeleteSibling
	if len(t.order) == 0 {
		trigger = TriggerDeleteLast
	}
	t.mu.Unlock()

	if err := t.store.Delete(ctx, annotationID); err != nil {
		t.logger.Error("annotation delete failed", "thread_id", t.id, "annotation_id", annotationID, "error", err)
		t.emit(EventDeleteError, Payload{
			ThreadID: t.id,
			Message:  messages.Get(messages.DeleteError),
			Err:      err,
		})
		return fmt.Errorf("deleting annotation %s: %w", annotationID, err)
	}

	t.mu.Lock()
	if s, ok := next(t.state, trigger, t.behavior.ActiveState()); ok {
		t.state = s
	}
	destroyed := t.state == StateDestroyed
	t.mu.Unlock()

	t.emit(EventDelete, Payload{ThreadID: t.id, Annotation: &ann})
	if destroyed {
		t.emit(EventThreadDelete, Payload{ThreadID: t.id})
		t.emit(EventCleanup, Payload{ThreadID: t.id})
	}
	return nil
}

// DeleteAsync runs Delete on its own goroutine; outcomes surface only
// through the delete/deleteError events.
func (t *Thread) DeleteAsync(ctx context.Context, annotationID string) {
	go func() {
		_ = t.Delete(ctx, annotationID)
	}()
}

// HoverEnter transitions an at-rest thread to hover and keeps an already
// hovering dialog open by disarming its settle timer.
func (t *Thread) HoverEnter() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settle.Disarm()
	if s, ok := next(t.state, TriggerHoverEnter, t.behavior.ActiveState()); ok {
		t.state = s
	}
}

// HoverLeave schedules the hover dialog to close after the kind's settle
// delay. Kinds with no settle delay close immediately.
func (t *Thread) HoverLeave() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateHover {
		return
	}
	d := t.behavior.HoverSettle()
	if d <= 0 {
		t.state = StateInactive
		return
	}
	t.settle.Arm(t.clock(), d)
}

// Tick advances timer-driven transitions; the controller calls it once per
// frame tick. Returns true when the state changed.
func (t *Thread) Tick(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.settle.Fire(now) {
		if s, ok := next(t.state, TriggerHoverSettle, t.behavior.ActiveState()); ok {
			t.state = s
			return true
		}
	}
	return false
}

// Click handles an explicit click/tap that was not consumed by another
// mark. Highlights land in hover; everything else commits to active.
func (t *Thread) Click() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settle.Disarm()
	if s, ok := next(t.state, TriggerClick, t.behavior.ActiveState()); ok {
		t.state = s
	}
}

// FocusComment marks a comment-entry sub-interaction as in progress,
// escalating pending to pending_active and active to active_active.
func (t *Thread) FocusComment() {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case StatePending:
		t.state = StatePendingActive
	case StateActive:
		t.state = StateActiveActive
	}
}

// BlurComment ends the comment-entry sub-interaction.
func (t *Thread) BlurComment() {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case StatePendingActive:
		t.state = StatePending
	case StateActiveActive:
		t.state = StateActive
	}
}

// ForceClose closes an open hover dialog immediately. The highlight
// controller uses this to keep at most one hover dialog open per tick.
func (t *Thread) ForceClose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settle.Disarm()
	if t.state == StateHover {
		t.state = StateInactive
	}
}

// Destroy terminates the thread. Idempotent; emits threadCleanup exactly
// once. A pending thread being destroyed also emits cancel.
func (t *Thread) Destroy() {
	t.mu.Lock()
	if t.state == StateDestroyed {
		t.mu.Unlock()
		return
	}
	wasPending := t.state.IsPending()
	t.state = StateDestroyed
	t.settle.Disarm()
	t.mu.Unlock()

	if wasPending {
		t.emit(EventCancel, Payload{ThreadID: t.id})
	}
	t.emit(EventCleanup, Payload{ThreadID: t.id})
}

// emit delivers the named event and re-broadcasts it as the generic
// threadevent.
func (t *Thread) emit(kind string, p Payload) {
	p.Event = kind
	t.emitter.Emit(kind, p)
	t.emitter.Emit(EventGeneric, p)
}
