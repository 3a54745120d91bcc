// Package controller implements the mode controllers: each owns every
// thread of one annotation type across all pages, binds that mode's pointer
// handlers while the mode is active, and resolves pointer events to threads
// through the per-page spatial index.
package controller

import (
	"time"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/events"
	"github.com/penwell/penwell/internal/pointer"
	"github.com/penwell/penwell/internal/thread"
)

// BorderOffset is the pixel tolerance added around a click point to form
// the spatial index query box.
const BorderOffset = 5.0

// Controller event kinds.
const (
	// EventRegister fires when a thread is registered with the controller.
	EventRegister = "register"
	// EventUnregister fires when a thread is unregistered.
	EventUnregister = "unregister"
	// EventEnter fires when a mode activates; the annotator exits every
	// other mode before this controller binds its handlers.
	EventEnter = "modeenter"
	// EventExit fires when a mode deactivates.
	EventExit = "modeexit"
	// EventError carries a user-visible error message.
	EventError = "annotationerror"
	// EventController is the generic re-broadcast of every controller
	// event, so one upstream listener can observe all controllers.
	EventController = "controllerevent"
)

// Payload is the data carried on EventController.
type Payload struct {
	Event string
	Mode  annotation.Type
	Data  any
}

// ErrorPayload is the data carried on EventError.
type ErrorPayload struct {
	Message string
	Err     error
}

// DocPoint is a pointer event resolved into document space.
type DocPoint struct {
	X          float64
	Y          float64
	Page       int
	Dimensions annotation.Dimensions
}

// Locator resolves raw pointer events against the host viewer. The
// annotator implements it.
type Locator interface {
	// LocationFromEvent converts a display-space event to document space.
	// Returns false when the event cannot be resolved (no page under it,
	// non-finite coordinates).
	LocationFromEvent(ev pointer.Event) (DocPoint, bool)
	// UnscaledPoint converts a display-space event to the unscaled pixel
	// space region locations are stored in (display divided by zoom).
	UnscaledPoint(ev pointer.Event) (DocPoint, bool)
	// PageSize returns the rendered size of a page in display pixels.
	PageSize(page int) (w, h float64, ok bool)
	// Zoom returns the current zoom scale.
	Zoom() float64
}

// Binder lets a controller attach pointer handlers for its mode. Bind
// returns the symmetric unbind; controllers keep every unbind and replay
// them on exit so no dangling handler survives a mode switch.
type Binder interface {
	Bind(mode annotation.Type, kind pointer.Kind, fn func(pointer.Event)) (unbind func())
}

// Controller is one annotation mode.
type Controller interface {
	// Mode returns the annotation type this controller owns.
	Mode() annotation.Type
	// Enter activates the mode, binding its pointer handlers. The annotator
	// guarantees every other mode exited first.
	Enter()
	// Exit deactivates the mode, destroying pending threads and unbinding
	// every handler. Safe to call when not entered.
	Exit()
	// Enabled reports whether the mode is active.
	Enabled() bool
	// RegisterThread validates and indexes a thread and subscribes to its
	// lifecycle events.
	RegisterThread(t *thread.Thread) error
	// UnregisterThread removes a thread from the index; no-op when absent.
	UnregisterThread(t *thread.Thread)
	// HandlePointer receives one normalized pointer event while the mode is
	// active.
	HandlePointer(ev pointer.Event)
	// Tick drives timer-based work (hover settling, move throttling) from
	// the host's frame loop.
	Tick(now time.Time)
	// DestroyPendingThreads destroys every pending-family thread and
	// reports whether any was found.
	DestroyPendingThreads() bool
	// Threads returns every registered thread across all pages.
	Threads() []*thread.Thread
	// Subscribe registers a handler for a controller event kind.
	Subscribe(kind string, fn events.Handler) (unsubscribe func())
	// Destroy tears the controller down: every thread destroyed, every
	// handler unbound. Idempotent.
	Destroy()
}
