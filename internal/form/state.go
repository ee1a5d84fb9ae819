// Package form drives entity form pages: field declarations, decoding of
// submitted values and the submission state machine.
package form

// State is a step of a form instance's lifecycle.
type State int

const (
	StateIdle State = iota
	StateEditing
	StateValidating
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var transitions = map[State][]State{
	StateIdle:       {StateEditing},
	StateEditing:    {StateValidating},
	StateValidating: {StateEditing, StateSubmitting},
	StateSubmitting: {StateSuccess, StateError},
	StateError:      {StateEditing},
	StateSuccess:    nil,
}

// CanTransition reports whether the state machine allows moving from s to next.
func (s State) CanTransition(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Busy reports whether the submit control must be disabled.
func (s State) Busy() bool {
	return s == StateValidating || s == StateSubmitting
}
