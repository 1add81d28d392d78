package youtube

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
	"github.com/lbmaian/chatdl/internal/log"
	"github.com/lbmaian/chatdl/internal/resilience"
)

// heartbeatThrottleSecs bounds how often issueHeartbeat is actually
// called; config.HeartbeatIntervalSecs falls back to this when the
// server never declared its own interval.
const heartbeatThrottleSecs = model.DefaultHeartbeatIntervalSecs

// updateAbortState implements §4.6 Phase III step 1: latch the
// original scheduled start time on first call, then - while still
// upcoming and the throttle interval has elapsed - issue a heartbeat
// and merge the result into both config and the abort-checker state.
// Once the HTML fallback is in effect no heartbeat is issued and
// nothing refreshes playability or the scheduled start time; the
// values already in config are merged again unchanged.
func (e *Engine) updateAbortState(ctx context.Context, config *model.EngineConfig, clock resilience.Clock, firstCall bool) []model.StateChange {
	logger := log.WithComponent("youtube").With().Str("video_id", config.VideoID).Logger()

	if firstCall {
		return e.abortState.UpdateScheduledStartTime(config.ScheduledStartTime)
	}

	now := clock.Now()
	throttle := config.HeartbeatIntervalSecs
	if throttle <= 0 {
		throttle = heartbeatThrottleSecs
	}
	limit := rate.Every(time.Duration(throttle * float64(time.Second)))
	if e.heartbeatLimiter == nil {
		e.heartbeatLimiter = rate.NewLimiter(limit, 1)
	} else if e.heartbeatLimiter.Limit() != limit {
		e.heartbeatLimiter.SetLimitAt(now, limit)
	}

	if !config.IsUpcoming || !e.heartbeatLimiter.AllowN(now, 1) {
		return nil
	}

	if !e.useFallback {
		if err := e.issueHeartbeat(ctx, config); err != nil {
			logger.Warn().Err(err).Msg("heartbeat check failed, keeping previous playability state")
		}
	}
	e.abortState.MarkPolled(now)

	var changes []model.StateChange
	changes = append(changes, e.abortState.UpdateScheduledStartTime(config.ScheduledStartTime)...)
	changes = append(changes, e.abortState.UpdatePlayabilityStatus(config.PlayabilityStatus)...)
	return changes
}
