package session

import "fmt"

// State is one phase of the session life-cycle.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
	StateInvalidating   State = "invalidating"
)

// legalTransitions is the full transition table. Anything not listed is an
// invalid move.
var legalTransitions = map[State][]State{
	StateAnonymous:      {StateAuthenticating},
	StateAuthenticating: {StateAuthenticated, StateAnonymous},
	StateAuthenticated:  {StateInvalidating},
	StateInvalidating:   {StateAnonymous},
}

// canTransition reports whether from -> to is a legal move.
func canTransition(from, to State) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// transition moves the manager's state. Callers must hold m.mu.
func (m *Manager) transition(to State) error {
	if !canTransition(m.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.state, to)
	}
	m.state = to
	return nil
}
