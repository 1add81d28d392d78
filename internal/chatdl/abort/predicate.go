// Package abort implements C4: compiling the operator-supplied DNF
// abort-condition formula into predicates and evaluating it against
// the engine's abort state on every poll tick.
package abort

import (
	"time"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
)

// Predicate is one named, evaluatable term of a condition group.
// Eval returns a human-readable message and true when the predicate
// currently holds; predicates that require state not yet observed
// (e.g. no scheduled start time known yet) return false, not an
// error - the group simply isn't satisfied yet.
type Predicate interface {
	Name() string
	Eval(state *model.AbortState, now time.Time) (message string, ok bool)
}

// Group is a conjunction of predicates; it corresponds to one
// operator-supplied --abort_condition occurrence (minus any signal
// directive, which never becomes a runtime predicate).
type Group struct {
	Predicates []Predicate
}

// eval ANDs every predicate in the group, short-circuiting on the
// first unsatisfied one. Its truthiness is the logical AND; its
// message is the join of every predicate's message, in order.
func (g Group) eval(state *model.AbortState, now time.Time) (string, bool) {
	msgs := make([]string, 0, len(g.Predicates))
	for _, p := range g.Predicates {
		msg, ok := p.Eval(state, now)
		if !ok {
			return "", false
		}
		msgs = append(msgs, msg)
	}
	return joinMessages(msgs), true
}

func joinMessages(msgs []string) string {
	if len(msgs) == 0 {
		return ""
	}
	out := msgs[0]
	for _, m := range msgs[1:] {
		out += ", " + m
	}
	return out
}
