// Package youtube implements C6: the YT chat engine. It drives C1/C2
// through a three-phase discovery/bootstrap/poll state machine,
// invokes C3 on every raw item, C4 before every poll tick, and pushes
// records to the caller's sink and/or callback.
//
// The phases are modeled as an explicit pipeline/fsm.Machine per the
// spec's design notes: no process-wide mutable config, just a single
// *model.EngineConfig passed by reference through the phases owned by
// one Engine instance.
package youtube

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/lbmaian/chatdl/internal/chatdl/httpsession"
	"github.com/lbmaian/chatdl/internal/chatdl/model"
	"github.com/lbmaian/chatdl/internal/chatdl/scrape"
	"github.com/lbmaian/chatdl/internal/log"
	"github.com/lbmaian/chatdl/internal/pipeline/fsm"
	"github.com/lbmaian/chatdl/internal/resilience"
)

// Phase names for the fsm.Machine that tracks engine progress. The
// machine itself carries no payload - it exists purely as the
// explicit state record the design notes call for; the actual
// config/continuation data flows through Go values in the Engine.
type phase string

const (
	phaseDiscovery phase = "discovery"
	phaseBootstrap phase = "bootstrap"
	phasePolling   phase = "polling"
	phaseDone      phase = "done"
)

type event string

const (
	eventRetryUpcoming event = "retry_upcoming"
	eventFound         event = "found"
	eventBootstrapped  event = "bootstrapped"
	eventTick          event = "tick"
	eventTerminate     event = "terminate"
)

// Options configures a Fetch call.
type Options struct {
	VideoID string

	StartSeconds *int64
	EndSeconds   *int64

	MessageFilter model.MessageFilter
	ChatType      string // "live" or "top", per --chat_type

	// AbortFormula, when non-nil, is checked before every poll tick and
	// during Phase I upcoming-retry waits.
	AbortFormula interface {
		Check(state *model.AbortState, now time.Time) error
	}

	// Callback, if set, is invoked for every emitted (non-suppressed)
	// record in addition to it being appended to the returned buffer.
	Callback func(*model.Record)

	Clock resilience.Clock

	// DefaultHeartbeatIntervalSecs seeds config.HeartbeatIntervalSecs
	// before any heartbeat response has declared its own interval; zero
	// falls back to model.DefaultHeartbeatIntervalSecs.
	DefaultHeartbeatIntervalSecs float64
	// UpcomingRetryMinSecs/MaxSecs bound the Phase I jittered retry
	// wait for a stream with no chat continuation yet; zero falls back
	// to the package defaults.
	UpcomingRetryMinSecs int
	UpcomingRetryMaxSecs int
}

// Engine drives a single YT video's chat retrieval. It owns no state
// beyond one call's worth of config/continuation; callers wanting
// concurrent videos instantiate one Engine (and one httpsession.Session)
// per video.
type Engine struct {
	sess    *httpsession.Session
	scraper *scrape.Scraper

	config      *model.EngineConfig
	abortState  model.AbortState
	useFallback bool

	// heartbeatLimiter throttles issueHeartbeat to at most once per
	// config.HeartbeatIntervalSecs, per §4.6 step 1; its limit is
	// re-tuned whenever the server declares a new interval.
	heartbeatLimiter *rate.Limiter

	// firstBatch/firstContinuations hold the bootstrap page's embedded
	// actions so Phase III's first tick doesn't re-fetch them, per
	// §4.6 step 3's "first_time -> the bootstrap payload already in
	// hand".
	firstBatch         []any
	firstContinuations []any
}

// New builds an Engine backed by sess.
func New(sess *httpsession.Session) *Engine {
	return &Engine{
		sess:    sess,
		scraper: scrape.New(sess),
	}
}

// Fetch runs the full discovery -> bootstrap -> polling pipeline and
// returns every record buffered along the way, even on a clean
// mid-poll termination (NoContinuation, VideoUnavailable,
// VideoNotFound, AbortConditionsSatisfied, or ctx cancellation).
func (e *Engine) Fetch(ctx context.Context, opts Options) ([]*model.Record, error) {
	if opts.Clock == nil {
		opts.Clock = resilience.RealClock
	}
	logger := log.WithComponent("youtube").With().Str("video_id", opts.VideoID).Logger()

	machine, err := fsm.New(phaseDiscovery, []fsm.Transition[phase, event]{
		{From: phaseDiscovery, Event: eventRetryUpcoming, To: phaseDiscovery},
		{From: phaseDiscovery, Event: eventFound, To: phaseBootstrap},
		{From: phaseBootstrap, Event: eventBootstrapped, To: phasePolling},
		{From: phasePolling, Event: eventTick, To: phasePolling},
		{From: phasePolling, Event: eventTerminate, To: phaseDone},
	})
	if err != nil {
		return nil, fmt.Errorf("youtube: building phase machine: %w", err)
	}
	machine.OnTransition(func(from, to phase, ev event) {
		logger.Debug().Str("from", string(from)).Str("to", string(to)).Str("event", string(ev)).Msg("phase transition")
	})

	config, continuationTitle, titleMap, err := e.runDiscovery(ctx, machine, opts)
	if err != nil {
		return nil, err
	}
	e.config = config
	if _, err := machine.Fire(ctx, eventFound); err != nil {
		return nil, err
	}

	continuation := titleMap[continuationTitle]
	bootstrap, err := e.runBootstrap(ctx, continuation)
	if err != nil {
		return nil, err
	}
	e.config.APIVersion = bootstrap.apiVersion
	e.config.APIKey = bootstrap.apiKey
	e.config.Context = bootstrap.context
	e.config.LoggedOut = bootstrap.loggedOut
	if e.config.HeartbeatIntervalSecs == 0 {
		if opts.DefaultHeartbeatIntervalSecs > 0 {
			e.config.HeartbeatIntervalSecs = opts.DefaultHeartbeatIntervalSecs
		} else {
			e.config.HeartbeatIntervalSecs = model.DefaultHeartbeatIntervalSecs
		}
	}
	e.firstBatch = bootstrap.actions
	e.firstContinuations = bootstrap.continuationsRaw
	if _, err := machine.Fire(ctx, eventBootstrapped); err != nil {
		return nil, err
	}

	records, pollErr := e.runPoll(ctx, bootstrap.continuation, opts)
	if _, err := machine.Fire(ctx, eventTerminate); err != nil {
		logger.Warn().Err(err).Msg("phase machine rejected terminal transition")
	}
	return records, pollErr
}
