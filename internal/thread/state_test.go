package thread

import "testing"

func TestStatePredicates(t *testing.T) {
	pending := map[State]bool{StatePending: true, StatePendingActive: true}
	dialog := map[State]bool{
		StatePending: true, StatePendingActive: true,
		StateHover: true, StateActive: true, StateActiveActive: true,
	}
	all := []State{
		StatePending, StatePendingActive, StateHover,
		StateActive, StateActiveActive, StateInactive, StateDestroyed,
	}
	for _, s := range all {
		if got := s.IsPending(); got != pending[s] {
			t.Errorf("%s.IsPending() = %v, want %v", s, got, pending[s])
		}
		if got := s.DialogOpen(); got != dialog[s] {
			t.Errorf("%s.DialogOpen() = %v, want %v", s, got, dialog[s])
		}
	}
}

// TestTransitionTable pins the full (state, trigger) table. Pairs absent
// from the expectations leave the state unchanged.
func TestTransitionTable(t *testing.T) {
	type key struct {
		s  State
		tr Trigger
	}
	states := []State{
		StatePending, StatePendingActive, StateHover,
		StateActive, StateActiveActive, StateInactive, StateDestroyed,
	}
	triggers := []Trigger{
		TriggerCancelEmpty, TriggerCancelWithPriors, TriggerSave,
		TriggerHoverEnter, TriggerHoverSettle, TriggerClick,
		TriggerDeleteSibling, TriggerDeleteLast,
	}

	// activeState = StateActive (every kind but highlight).
	handled := map[key]State{
		{StatePending, TriggerCancelEmpty}:            StateDestroyed,
		{StatePendingActive, TriggerCancelEmpty}:      StateDestroyed,
		{StatePending, TriggerCancelWithPriors}:       StateInactive,
		{StatePendingActive, TriggerCancelWithPriors}: StateInactive,
		{StatePending, TriggerSave}:                   StateHover,
		{StatePendingActive, TriggerSave}:             StateHover,
		{StateInactive, TriggerHoverEnter}:            StateHover,
		{StateHover, TriggerHoverSettle}:              StateInactive,
		{StateHover, TriggerClick}:                    StateActive,
		{StateActive, TriggerClick}:                   StateActive,
		{StateInactive, TriggerClick}:                 StateActive,
		{StateHover, TriggerDeleteSibling}:            StateInactive,
		{StateActive, TriggerDeleteSibling}:           StateInactive,
		{StateActiveActive, TriggerDeleteSibling}:     StateInactive,
		{StateInactive, TriggerDeleteSibling}:         StateInactive,
		{StateHover, TriggerDeleteLast}:               StateDestroyed,
		{StateActive, TriggerDeleteLast}:              StateDestroyed,
		{StateActiveActive, TriggerDeleteLast}:        StateDestroyed,
		{StateInactive, TriggerDeleteLast}:            StateDestroyed,
	}

	for _, s := range states {
		for _, tr := range triggers {
			got, ok := next(s, tr, StateActive)
			want, handledPair := handled[key{s, tr}]
			if handledPair {
				if !ok || got != want {
					t.Errorf("next(%s, %s) = (%s, %v), want (%s, true)", s, tr, got, ok, want)
				}
				continue
			}
			if ok {
				t.Errorf("next(%s, %s) = (%s, true), want unhandled", s, tr, got)
			}
			if got != s {
				t.Errorf("next(%s, %s) changed state to %s on an unhandled pair", s, tr, got)
			}
		}
	}
}

func TestTransitionDestroyedIsTerminal(t *testing.T) {
	triggers := []Trigger{
		TriggerCancelEmpty, TriggerCancelWithPriors, TriggerSave,
		TriggerHoverEnter, TriggerHoverSettle, TriggerClick,
		TriggerDeleteSibling, TriggerDeleteLast,
	}
	for _, tr := range triggers {
		if got, ok := next(StateDestroyed, tr, StateActive); ok || got != StateDestroyed {
			t.Errorf("next(destroyed, %s) = (%s, %v), want (destroyed, false)", tr, got, ok)
		}
	}
}

func TestTransitionClickActiveState(t *testing.T) {
	// Highlights click into hover instead of active.
	for _, s := range []State{StateHover, StateActive, StateInactive} {
		if got, ok := next(s, TriggerClick, StateHover); !ok || got != StateHover {
			t.Errorf("next(%s, click, hover) = (%s, %v), want (hover, true)", s, got, ok)
		}
	}
}
