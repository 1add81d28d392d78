// Package fsm implements a small generic finite-state machine. The chat
// engine (internal/chatdl/youtube) uses one Machine instance per video
// to record its own discovery/bootstrap/poll/done phase explicitly,
// rather than letting that progression live only implicitly in which
// function happens to be running.
package fsm

import (
	"context"
	"fmt"
	"sync"
)

// Transition describes a single edge in the machine: From+Event leads
// to To. Guard may reject the transition before it takes effect;
// Action runs once the transition is accepted, before the new state is
// published to State().
type Transition[S ~string, E ~string] struct {
	From   S
	Event  E
	To     S
	Guard  func(ctx context.Context, from S, event E) error
	Action func(ctx context.Context, from S, to S, event E) error
}

// Machine is a small, test-friendly FSM runner. It is intentionally
// strict: firing an event with no matching transition from the current
// state is an error, not a no-op, so a phase driver that mis-sequences
// its own calls (e.g. polling before bootstrap completes) fails loudly
// instead of silently staying put.
type Machine[S ~string, E ~string] struct {
	mu           sync.Mutex
	state        S
	transitions  map[string]Transition[S, E]
	onTransition func(from, to S, event E)
}

// New builds a Machine starting in initial, indexed by every
// transition's (From, Event) pair. Two transitions sharing a pair is a
// configuration error, caught here rather than at the first Fire that
// would have been ambiguous.
func New[S ~string, E ~string](initial S, transitions []Transition[S, E]) (*Machine[S, E], error) {
	indexed := make(map[string]Transition[S, E], len(transitions))
	for _, t := range transitions {
		edgeKey := key(t.From, t.Event)
		if _, exists := indexed[edgeKey]; exists {
			return nil, fmt.Errorf("fsm: duplicate transition for state=%s event=%s", t.From, t.Event)
		}
		indexed[edgeKey] = t
	}
	return &Machine[S, E]{state: initial, transitions: indexed}, nil
}

// OnTransition installs a hook invoked after every successful Fire,
// with the pre- and post-transition state and the firing event. The
// chat engine uses this to log its own phase vocabulary (discovery,
// bootstrap, polling, done) rather than the machine logging anything
// itself - the machine stays a generic mover, the caller names what
// moved.
func (m *Machine[S, E]) OnTransition(hook func(from, to S, event E)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTransition = hook
}

// State returns the machine's current state.
func (m *Machine[S, E]) State() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Fire attempts to apply event from the current state. Guard and
// Action run outside the lock so a slow or blocking Action doesn't
// stall concurrent State() reads; a defensive re-check after Action
// catches the case where some other caller raced a transition in
// underneath it.
func (m *Machine[S, E]) Fire(ctx context.Context, event E) (S, error) {
	m.mu.Lock()
	from := m.state
	t, ok := m.transitions[key(from, event)]
	if !ok {
		m.mu.Unlock()
		return from, fmt.Errorf("fsm: no transition for state=%s event=%s", from, event)
	}
	to := t.To
	hook := m.onTransition
	m.mu.Unlock()

	if t.Guard != nil {
		if err := t.Guard(ctx, from, event); err != nil {
			return from, fmt.Errorf("fsm: guard rejected state=%s event=%s: %w", from, event, err)
		}
	}
	if t.Action != nil {
		if err := t.Action(ctx, from, to, event); err != nil {
			return from, fmt.Errorf("fsm: action failed state=%s event=%s: %w", from, event, err)
		}
	}

	m.mu.Lock()
	if m.state != from {
		cur := m.state
		m.mu.Unlock()
		return cur, fmt.Errorf("fsm: concurrent transition raced in: from=%s now=%s event=%s", from, cur, event)
	}
	m.state = to
	m.mu.Unlock()

	if hook != nil {
		hook(from, to, event)
	}
	return to, nil
}

func key[S ~string, E ~string](from S, event E) string {
	return string(from) + "|" + string(event)
}
