// Package input defines the discrete input signals the mini-games consume.
// The real event pump (window events, keyboard state) lives outside the
// core; the games only see a sampled State per tick.
package input

// State is the input sample for one simulation tick.
type State struct {
	// Quit requests immediate process exit. Highest priority.
	Quit bool
	// Escape requests a return to the external menu. Accepted in every
	// session state.
	Escape bool
	// Restart requests a new round. Only honored in the game-over state.
	Restart bool
	// Jump and Duck are the raw keyboard fallbacks for the runner game.
	Jump bool
	Duck bool
}

// Source supplies one input State per tick.
type Source interface {
	Poll() State
}

// Func adapts a plain function to the Source interface.
type Func func() State

// Poll implements Source.
func (f Func) Poll() State { return f() }

// Script is a test Source that plays back a fixed sequence of states,
// returning the zero State once the sequence is exhausted.
type Script struct {
	states []State
	index  int
}

// NewScript creates a Script from the given states.
func NewScript(states ...State) *Script {
	return &Script{states: states}
}

// Push appends states to the script.
func (s *Script) Push(states ...State) {
	s.states = append(s.states, states...)
}

// Poll returns the next scripted state.
func (s *Script) Poll() State {
	if s.index >= len(s.states) {
		return State{}
	}
	st := s.states[s.index]
	s.index++
	return st
}

// Hold is a test Source that returns the same state forever.
type Hold struct {
	State State
}

// Poll implements Source.
func (h *Hold) Poll() State { return h.State }
