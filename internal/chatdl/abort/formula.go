package abort

import (
	"strings"
	"time"

	cerrors "github.com/lbmaian/chatdl/internal/chatdl/errors"
	"github.com/lbmaian/chatdl/internal/chatdl/model"
	"github.com/lbmaian/chatdl/internal/log"
)

// Formula is the compiled disjunction of condition groups produced by
// Compile. Groups are ORed; within a Group, predicates are ANDed.
type Formula struct {
	Groups []Group
}

// Empty reports whether the formula has no groups at all (the common
// case: the operator supplied no --abort_condition at all, or only
// signal directives).
func (f *Formula) Empty() bool {
	return f == nil || len(f.Groups) == 0
}

// Check evaluates every group against state and now. If any group is
// satisfied it returns *cerrors.AbortError wrapping
// cerrors.ErrAbortConditionsSatisfied, carrying every satisfied
// group's joined message - the engine's poll loop treats this as a
// clean, buffer-preserving exit.
func (f *Formula) Check(state *model.AbortState, now time.Time) error {
	if f.Empty() {
		return nil
	}
	var satisfied []string
	for _, g := range f.Groups {
		if msg, ok := g.eval(state, now); ok {
			satisfied = append(satisfied, msg)
		}
	}
	if len(satisfied) == 0 {
		return nil
	}
	logAbort(satisfied)
	return &cerrors.AbortError{Messages: satisfied}
}

func logAbort(messages []string) {
	log.WithComponent("abort").Info().
		Str("event", "abort.conditions_satisfied").
		Str("message", strings.Join(messages, "; ")).
		Msg("abort conditions satisfied")
}
