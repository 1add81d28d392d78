package abort

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
)

// minTimeUntilScheduledStart fires when (scheduled - now) exceeds the
// configured threshold.
type minTimeUntilScheduledStart struct {
	threshold time.Duration
}

func newMinTimeUntilScheduledStart(rest string) (Predicate, error) {
	parts := strings.Split(rest, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("min_time_until_scheduled_start_time: expected <HH>:<MM>, got %q", rest)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("min_time_until_scheduled_start_time: bad hours %q: %w", parts[0], err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("min_time_until_scheduled_start_time: bad minutes %q: %w", parts[1], err)
	}
	return &minTimeUntilScheduledStart{
		threshold: time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute,
	}, nil
}

func (p *minTimeUntilScheduledStart) Name() string { return "min_time_until_scheduled_start_time" }

func (p *minTimeUntilScheduledStart) Eval(state *model.AbortState, now time.Time) (string, bool) {
	if state.ScheduledStartTime == nil {
		return "", false
	}
	delta := state.ScheduledStartTime.Sub(now)
	if delta <= p.threshold {
		return "", false
	}
	return fmt.Sprintf("%d secs >= %d secs", int64(delta.Seconds()), int64(p.threshold.Seconds())), true
}
