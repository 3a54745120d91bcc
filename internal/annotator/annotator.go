// Package annotator wires the mode controllers for one viewer session into
// a single orchestrator: it normalizes host viewer events into locations,
// enforces mode exclusivity, hydrates threads from the store, and surfaces
// high-level annotation events to the hosting application. One Annotator is
// constructed and owned per viewer session; there is no process-wide
// registry.
package annotator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/controller"
	"github.com/penwell/penwell/internal/events"
	"github.com/penwell/penwell/internal/geometry"
	"github.com/penwell/penwell/internal/messages"
	"github.com/penwell/penwell/internal/pointer"
	"github.com/penwell/penwell/internal/store"
	"github.com/penwell/penwell/internal/thread"
)

// High-level events exposed to the hosting application.
const (
	// EventFetched fires after stored annotations were hydrated into
	// threads; data is the thread count.
	EventFetched = "annotationsfetched"
	// EventError carries a controller.ErrorPayload with a user-visible
	// message.
	EventError = "annotationerror"
	// EventScale fires when the zoom scale changed; data is the new scale.
	EventScale = "scaleannotations"
	// EventVisibility fires when annotation visibility toggled; data is the
	// new visibility.
	EventVisibility = "annotationsetvisibility"
	// EventThread re-broadcasts every thread-level event as a
	// controller.Payload.
	EventThread = "threadevent"
)

// Viewer is the integration surface the host viewer supplies.
type Viewer interface {
	// Zoom returns the current zoom scale.
	Zoom() float64
	// PageSize returns the rendered page size in display pixels at the
	// current zoom, or false when the page does not exist.
	PageSize(page int) (w, h float64, ok bool)
	// VerticalPadding is the padding above the page content, in display
	// pixels, excluded when comparing saved and current page sizes.
	VerticalPadding() float64
	// Rotation returns the viewer rotation in degrees; image regions care,
	// document pages report 0.
	Rotation() int
}

// Config configures an annotator session.
type Config struct {
	// FileID identifies the annotated file.
	FileID string
	// Permissions gate creation and visibility.
	Permissions annotation.FilePermissions
	// Viewer is the host integration; required.
	Viewer Viewer
	// Store persists annotations; required.
	Store store.Store
	// Types are the enabled annotation modes, usually from Resolve.
	Types []annotation.Type
	// Clock defaults to time.Now.
	Clock pointer.Clock
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

type boundHandler struct {
	kind pointer.Kind
	fn   func(pointer.Event)
}

// Annotator orchestrates the controllers of one viewer session.
type Annotator struct {
	fileID  string
	perms   annotation.FilePermissions
	viewer  Viewer
	store   store.Store
	clock   pointer.Clock
	logger  *slog.Logger
	emitter *events.Emitter

	controllers map[annotation.Type]controller.Controller
	order       []annotation.Type

	mu        sync.Mutex
	active    annotation.Type
	bindings  map[annotation.Type][]*boundHandler
	visible   bool
	destroyed bool
}

// New constructs the annotator and one controller per enabled type.
func New(cfg Config) (*Annotator, error) {
	if cfg.Viewer == nil {
		return nil, fmt.Errorf("annotator requires a viewer")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("annotator requires a store")
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	a := &Annotator{
		fileID:      cfg.FileID,
		perms:       cfg.Permissions,
		viewer:      cfg.Viewer,
		store:       cfg.Store,
		clock:       cfg.Clock,
		logger:      cfg.Logger,
		emitter:     events.NewEmitter(),
		controllers: make(map[annotation.Type]controller.Controller),
		bindings:    make(map[annotation.Type][]*boundHandler),
		visible:     true,
	}

	ctrlCfg := controller.Config{
		FileID:  cfg.FileID,
		Store:   cfg.Store,
		Locator: a,
		Binder:  a,
		Clock:   cfg.Clock,
		Logger:  cfg.Logger,
	}
	for _, t := range cfg.Types {
		if _, dup := a.controllers[t]; dup {
			continue
		}
		var c controller.Controller
		switch t {
		case annotation.TypePoint:
			c = controller.NewPoint(ctrlCfg)
		case annotation.TypeHighlight:
			c = controller.NewHighlight(ctrlCfg, false)
		case annotation.TypeHighlightComment:
			c = controller.NewHighlight(ctrlCfg, true)
		case annotation.TypeDraw:
			c = controller.NewDraw(ctrlCfg)
		case annotation.TypeRegion:
			c = controller.NewRegion(ctrlCfg)
		default:
			return nil, fmt.Errorf("unknown annotation type %q", t)
		}
		a.controllers[t] = c
		a.order = append(a.order, t)
		a.watch(c)
	}
	return a, nil
}

// watch relays one controller's generic events upward and enforces mode
// exclusivity when a mode announces entry.
func (a *Annotator) watch(c controller.Controller) {
	mode := c.Mode()
	c.Subscribe(controller.EventController, func(data any) {
		p, ok := data.(controller.Payload)
		if !ok {
			return
		}
		switch p.Event {
		case controller.EventEnter:
			a.exitOthers(mode)
			a.mu.Lock()
			a.active = mode
			a.mu.Unlock()
		case controller.EventExit:
			a.mu.Lock()
			if a.active == mode {
				a.active = ""
			}
			a.mu.Unlock()
		}
		a.emitter.Emit(EventThread, p)
	})
	c.Subscribe(controller.EventError, func(data any) {
		a.emitter.Emit(EventError, data)
	})
}

func (a *Annotator) exitOthers(entering annotation.Type) {
	for _, t := range a.order {
		if t != entering {
			a.controllers[t].Exit()
		}
	}
}

// Subscribe registers a handler for a high-level annotator event.
func (a *Annotator) Subscribe(kind string, fn events.Handler) (unsubscribe func()) {
	return a.emitter.Subscribe(kind, fn)
}

// Controller returns the controller for an enabled type.
func (a *Annotator) Controller(t annotation.Type) (controller.Controller, bool) {
	c, ok := a.controllers[t]
	return c, ok
}

// ActiveMode returns the currently entered mode, or empty when none.
func (a *Annotator) ActiveMode() annotation.Type {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// ToggleMode enters the given mode (exiting any other) or exits it when it
// is already active. Creation modes require annotate permission.
func (a *Annotator) ToggleMode(t annotation.Type) error {
	c, ok := a.controllers[t]
	if !ok {
		return fmt.Errorf("annotation type %q not enabled", t)
	}
	if !a.perms.CanAnnotate && !a.perms.CanCreateAnnotations {
		a.emitter.Emit(EventError, controller.ErrorPayload{
			Message: messages.Get(messages.AuthError),
		})
		return fmt.Errorf("annotation not permitted on file %s", a.fileID)
	}
	if c.Enabled() {
		c.Exit()
		return nil
	}
	c.Enter()
	return nil
}

// ExitMode exits whichever mode is active.
func (a *Annotator) ExitMode() {
	a.mu.Lock()
	active := a.active
	a.mu.Unlock()
	if active == "" {
		return
	}
	if c, ok := a.controllers[active]; ok {
		c.Exit()
	}
}

// HandlePointer delivers a normalized pointer event to the handlers bound
// by the active mode. Only one mode's handlers exist at a time.
func (a *Annotator) HandlePointer(ev pointer.Event) {
	a.mu.Lock()
	active := a.active
	var fns []func(pointer.Event)
	for _, h := range a.bindings[active] {
		if h.kind == ev.Kind {
			fns = append(fns, h.fn)
		}
	}
	a.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Tick drives frame-based work (move throttling, hover settle timers) on
// every controller.
func (a *Annotator) Tick() {
	now := a.clock()
	for _, t := range a.order {
		a.controllers[t].Tick(now)
	}
}

// Bind implements controller.Binder.
func (a *Annotator) Bind(mode annotation.Type, kind pointer.Kind, fn func(pointer.Event)) (unbind func()) {
	h := &boundHandler{kind: kind, fn: fn}
	a.mu.Lock()
	a.bindings[mode] = append(a.bindings[mode], h)
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		hs := a.bindings[mode]
		for i, other := range hs {
			if other == h {
				a.bindings[mode] = append(hs[:i], hs[i+1:]...)
				return
			}
		}
	}
}

// LocationFromEvent implements controller.Locator: display space to
// document space against the event's page.
func (a *Annotator) LocationFromEvent(ev pointer.Event) (controller.DocPoint, bool) {
	page := annotation.NormalizePage(ev.Page)
	w, h, ok := a.viewer.PageSize(page)
	if !ok {
		return controller.DocPoint{}, false
	}
	zoom := a.viewer.Zoom()
	if zoom <= 0 {
		return controller.DocPoint{}, false
	}
	coords := geometry.ToDocumentSpace([]float64{ev.X, ev.Y}, h, zoom)
	if math.IsNaN(coords[0]) || math.IsNaN(coords[1]) {
		return controller.DocPoint{}, false
	}
	return controller.DocPoint{
		X:    coords[0],
		Y:    coords[1],
		Page: page,
		Dimensions: annotation.Dimensions{
			X: w / zoom,
			Y: (h - a.viewer.VerticalPadding()) / zoom,
		},
	}, true
}

// UnscaledPoint implements controller.Locator: display space divided by
// zoom, the space region locations are stored in.
func (a *Annotator) UnscaledPoint(ev pointer.Event) (controller.DocPoint, bool) {
	page := annotation.NormalizePage(ev.Page)
	w, h, ok := a.viewer.PageSize(page)
	if !ok {
		return controller.DocPoint{}, false
	}
	zoom := a.viewer.Zoom()
	if zoom <= 0 {
		return controller.DocPoint{}, false
	}
	return controller.DocPoint{
		X:    ev.X / zoom,
		Y:    ev.Y / zoom,
		Page: page,
		Dimensions: annotation.Dimensions{
			X: w / zoom,
			Y: (h - a.viewer.VerticalPadding()) / zoom,
		},
	}, true
}

// PageSize implements controller.Locator.
func (a *Annotator) PageSize(page int) (w, h float64, ok bool) {
	return a.viewer.PageSize(page)
}

// Zoom implements controller.Locator.
func (a *Annotator) Zoom() float64 { return a.viewer.Zoom() }

// FetchAnnotations loads stored annotations, groups them into threads, and
// registers each thread with its mode's controller. Types without an
// enabled controller are skipped. Emits annotationsfetched with the thread
// count, or annotationerror when the load fails.
func (a *Annotator) FetchAnnotations(ctx context.Context) error {
	if !a.perms.CanView() {
		a.emitter.Emit(EventFetched, 0)
		return nil
	}

	anns, err := a.store.List(ctx, a.fileID)
	if err != nil {
		a.logger.Error("annotation fetch failed", "file_id", a.fileID, "error", err)
		a.emitter.Emit(EventError, controller.ErrorPayload{
			Message: messages.Get(messages.LoadError),
			Err:     err,
		})
		return fmt.Errorf("fetching annotations: %w", err)
	}

	groups := make(map[string][]annotation.Annotation)
	var threadIDs []string
	for _, ann := range anns {
		key := ann.ThreadID
		if key == "" {
			key = ann.ID
		}
		if _, seen := groups[key]; !seen {
			threadIDs = append(threadIDs, key)
		}
		groups[key] = append(groups[key], ann)
	}

	count := 0
	for _, id := range threadIDs {
		group := groups[id]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CreatedAt.Before(group[j].CreatedAt)
		})
		first := group[0]
		c, ok := a.controllers[first.Type]
		if !ok || first.Location == nil {
			continue
		}
		t, err := thread.New(thread.Config{
			Type:        first.Type,
			Location:    first.Location,
			FileID:      a.fileID,
			Store:       a.store,
			Annotations: group,
			Clock:       a.clock,
			Logger:      a.logger,
		})
		if err != nil {
			a.logger.Warn("skipping stored annotation with invalid location",
				"thread_id", id, "type", first.Type, "error", err)
			continue
		}
		if err := c.RegisterThread(t); err != nil {
			continue
		}
		count++
	}

	a.emitter.Emit(EventFetched, count)
	return nil
}

// SetScale announces a zoom change so the host re-renders every mark at
// the new scale.
func (a *Annotator) SetScale(scale float64) {
	a.emitter.Emit(EventScale, scale)
}

// SetVisibility shows or hides every thread across every mode.
func (a *Annotator) SetVisibility(visible bool) {
	a.mu.Lock()
	a.visible = visible
	a.mu.Unlock()
	for _, tp := range a.order {
		for _, t := range a.controllers[tp].Threads() {
			if visible {
				t.Show()
			} else {
				t.Hide()
			}
		}
	}
	a.emitter.Emit(EventVisibility, visible)
}

// Destroy tears down every controller. Idempotent.
func (a *Annotator) Destroy() {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return
	}
	a.destroyed = true
	a.mu.Unlock()

	for _, t := range a.order {
		a.controllers[t].Destroy()
	}
}
