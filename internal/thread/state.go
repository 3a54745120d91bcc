package thread

// State is the lifecycle state of a thread's mark and dialog.
type State string

const (
	// StatePending marks a freshly created, unsaved thread with the first
	// comment dialog open.
	StatePending State = "pending"
	// StatePendingActive is pending with a sub-interaction (comment entry)
	// in progress.
	StatePendingActive State = "pending_active"
	// StateHover shows the dialog because the pointer is over the mark, not
	// yet committed to staying open.
	StateHover State = "hover"
	// StateActive is an explicitly selected, committed-open thread.
	StateActive State = "active"
	// StateActiveActive is active with a sub-interaction in progress.
	StateActiveActive State = "active_active"
	// StateInactive is at rest.
	StateInactive State = "inactive"
	// StateDestroyed is terminal; the thread is unregistered everywhere and
	// accepts no further transitions.
	StateDestroyed State = "destroyed"
)

// IsPending reports whether the state is in the pending family.
func (s State) IsPending() bool {
	return s == StatePending || s == StatePendingActive
}

// DialogOpen reports whether the state renders an open dialog.
func (s State) DialogOpen() bool {
	switch s {
	case StatePending, StatePendingActive, StateHover, StateActive, StateActiveActive:
		return true
	}
	return false
}

// Trigger is a state machine input.
type Trigger string

const (
	// TriggerCancelEmpty cancels the first comment on a thread with no
	// persisted annotations.
	TriggerCancelEmpty Trigger = "cancel_empty"
	// TriggerCancelWithPriors cancels comment entry on a re-opened thread
	// that already has annotations.
	TriggerCancelWithPriors Trigger = "cancel_with_priors"
	// TriggerSave posts the pending comment.
	TriggerSave Trigger = "save"
	// TriggerHoverEnter fires when the pointer enters the mark geometry.
	TriggerHoverEnter Trigger = "hover_enter"
	// TriggerHoverSettle fires when the pointer has left the geometry and
	// the settle timeout elapsed.
	TriggerHoverSettle Trigger = "hover_settle"
	// TriggerClick is an explicit click/tap not consumed by another mark.
	TriggerClick Trigger = "click"
	// TriggerDeleteSibling removes one of several annotations.
	TriggerDeleteSibling Trigger = "delete_sibling"
	// TriggerDeleteLast removes the final annotation.
	TriggerDeleteLast Trigger = "delete_last"
)

// next computes the state transition table. activeState is the state a
// click lands in (StateActive normally, StateHover for highlights). The
// second return is false for (state, trigger) pairs the table does not
// handle; callers leave the state unchanged for those.
func next(s State, tr Trigger, activeState State) (State, bool) {
	if s == StateDestroyed {
		return s, false
	}
	switch tr {
	case TriggerCancelEmpty:
		if s.IsPending() {
			return StateDestroyed, true
		}
	case TriggerCancelWithPriors:
		if s.IsPending() {
			return StateInactive, true
		}
	case TriggerSave:
		if s.IsPending() {
			return StateHover, true
		}
	case TriggerHoverEnter:
		if s == StateInactive {
			return StateHover, true
		}
	case TriggerHoverSettle:
		if s == StateHover {
			return StateInactive, true
		}
	case TriggerClick:
		if s == StateHover || s == StateActive || s == StateInactive {
			return activeState, true
		}
	case TriggerDeleteSibling:
		if !s.IsPending() {
			return StateInactive, true
		}
	case TriggerDeleteLast:
		if !s.IsPending() {
			return StateDestroyed, true
		}
	}
	return s, false
}
