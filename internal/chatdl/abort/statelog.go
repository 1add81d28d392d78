package abort

import (
	"github.com/lbmaian/chatdl/internal/chatdl/model"
	"github.com/lbmaian/chatdl/internal/log"
)

// LogStateChanges emits every abort-state mutation before the checker
// evaluates conditions against the refreshed state, per spec: "Every
// mutation is recorded as a triple (key, old, new) and emitted to the
// log before conditions are evaluated."
func LogStateChanges(changes []model.StateChange) {
	logger := log.WithComponent("abort")
	for _, c := range changes {
		logger.Debug().
			Str("event", "abort.state_changed").
			Str("key", c.Key).
			Str("kind", string(c.Kind)).
			Interface("old", c.Old).
			Interface("new", c.New).
			Msg("abort state changed")
	}
}
