package abort

import (
	"fmt"
	"time"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
)

// direction constrains which way the scheduled start time must have
// moved for changedScheduledStartTime to fire.
type direction byte

const (
	directionEither direction = 0
	directionLater  direction = '+'
	directionEarlier direction = '-'
)

// changedScheduledStartTime fires when the formatted scheduled start
// differs between the first observed value (AbortState's latched
// OrigScheduledStartTime) and the current one.
type changedScheduledStartTime struct {
	raw    string
	layout string
	dir    direction
}

func newChangedScheduledStartTime(rest string) (Predicate, error) {
	dir := directionEither
	format := rest
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		dir = direction(rest[0])
		format = rest[1:]
	}
	if format == "" {
		return nil, fmt.Errorf("changed_scheduled_start_time: missing strftime format")
	}
	layout, err := compileStrftime(format)
	if err != nil {
		return nil, err
	}
	if err := verifyRoundTrip(layout); err != nil {
		return nil, fmt.Errorf("changed_scheduled_start_time: format %q: %w", format, err)
	}
	return &changedScheduledStartTime{raw: rest, layout: layout, dir: dir}, nil
}

func (p *changedScheduledStartTime) Name() string { return "changed_scheduled_start_time" }

func (p *changedScheduledStartTime) Eval(state *model.AbortState, _ time.Time) (string, bool) {
	if state.OrigScheduledStartTime == nil || state.ScheduledStartTime == nil {
		return "", false
	}
	orig := state.OrigScheduledStartTime.Format(p.layout)
	cur := state.ScheduledStartTime.Format(p.layout)
	if orig == cur {
		return "", false
	}
	switch p.dir {
	case directionLater:
		if !state.ScheduledStartTime.After(*state.OrigScheduledStartTime) {
			return "", false
		}
	case directionEarlier:
		if !state.ScheduledStartTime.Before(*state.OrigScheduledStartTime) {
			return "", false
		}
	}
	return fmt.Sprintf("scheduled start time changed from %s to %s", orig, cur), true
}
