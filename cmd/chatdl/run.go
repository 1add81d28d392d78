package main

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/lbmaian/chatdl/internal/chatdl/abort"
	"github.com/lbmaian/chatdl/internal/chatdl/cookies"
	cerrors "github.com/lbmaian/chatdl/internal/chatdl/errors"
	"github.com/lbmaian/chatdl/internal/chatdl/httpsession"
	"github.com/lbmaian/chatdl/internal/chatdl/model"
	"github.com/lbmaian/chatdl/internal/chatdl/normalize"
	"github.com/lbmaian/chatdl/internal/chatdl/signalrouter"
	"github.com/lbmaian/chatdl/internal/chatdl/sink"
	"github.com/lbmaian/chatdl/internal/chatdl/twitch"
	"github.com/lbmaian/chatdl/internal/chatdl/youtube"
	"github.com/lbmaian/chatdl/internal/config"
	"github.com/lbmaian/chatdl/internal/log"
	"github.com/lbmaian/chatdl/internal/metrics"
	"github.com/lbmaian/chatdl/internal/version"
)

// run wires every component together the way the original's main()
// wires ChatReplayDownloader, its callback, its signal handlers, and
// its finally-block output flush - without the cyclic closures the
// design notes (spec.md §9) call out: signalrouter.Controller owns the
// only handler->finalizer edge, and the finalizer here only cancels
// ctx, never touches the sink or engine directly.
func run(ctx context.Context, opts *Options) error {
	logWriter, closeLogs, err := buildLogWriter(opts)
	if err != nil {
		return err
	}
	defer closeLogs()

	log.Configure(log.Config{
		Level:   translateLogLevel(opts.LogLevel),
		Output:  logWriter,
		Service: "chatdl",
		Version: version.Version,
	})
	logger := log.WithComponent("cmd")

	plat, videoID, err := demux(opts.URL)
	if err != nil {
		logger.Error().Err(err).Str("url", opts.URL).Msg("could not determine platform for url")
		return err
	}
	logger = logger.With().Str("video_id", videoID).Logger()

	startSeconds := normalize.EnsureSeconds(opts.StartTime, 0)
	var startPtr *int64
	if startSeconds != 0 {
		startPtr = &startSeconds
	}
	var endPtr *int64
	if opts.EndTime != "" {
		endSeconds := normalize.EnsureSeconds(opts.EndTime, 0)
		endPtr = &endSeconds
	}

	formula, directives, err := abort.Compile(opts.AbortConditions)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compile abort conditions")
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	controller := signalrouter.New(func(context.Context) { cancel() })
	for _, d := range directives {
		controller.SetPolicy(d.SignalName, signalrouter.Policy(d.Policy))
	}

	tunables, err := config.NewLoader().Load()
	if err != nil {
		logger.Error().Err(err).Msg("failed to load engine tunables")
		return err
	}

	jar, err := loadCookieJar(opts.Cookies)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load cookie jar")
		return err
	}

	sess, err := httpsession.NewWithTunables(jar, tunables.HTTPTimeout, tunables.MaxRetries, tunables.BackoffInitial, tunables.BackoffMax)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build http session")
		return err
	}
	rec := metrics.New()
	sess.SetMetrics(rec)

	var out *sink.Sink
	if opts.Output != "" {
		out, err = sink.Open(opts.Output, opts.Newline)
		if err != nil {
			logger.Error().Err(err).Msg("failed to open output sink")
			return err
		}
	}

	callback := func(r *model.Record) {
		if out != nil {
			if err := out.Append(r); err != nil {
				logger.Warn().Err(err).Msg("failed to append record to output sink")
			}
		}
		if !r.IsTicker() {
			fmt.Println(sink.FormatMessage(r))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		controller.Run(gctx)
		return nil
	})

	var records []*model.Record
	var fetchErr error
	g.Go(func() error {
		switch plat {
		case platformYouTube:
			records, fetchErr = youtube.New(sess).Fetch(gctx, youtube.Options{
				VideoID:                      videoID,
				StartSeconds:                 startPtr,
				EndSeconds:                   endPtr,
				MessageFilter:                model.MessageFilter(opts.MessageType),
				ChatType:                     opts.ChatType,
				AbortFormula:                 formula,
				Callback:                     callback,
				DefaultHeartbeatIntervalSecs: tunables.HeartbeatIntervalSecs,
				UpcomingRetryMinSecs:         tunables.UpcomingRetryMinSecs,
				UpcomingRetryMaxSecs:         tunables.UpcomingRetryMaxSecs,
			})
		case platformTwitch:
			records, fetchErr = twitch.FetchMessages(gctx, sess, twitch.Options{
				VideoID:      videoID,
				ClientID:     twitch.PublicClientID,
				StartSeconds: startPtr,
				EndSeconds:   endPtr,
				Callback:     callback,
			})
		}
		cancel()
		return nil
	})
	_ = g.Wait()

	if out != nil {
		if cerr := out.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("failed to flush output sink")
			if fetchErr == nil {
				fetchErr = cerr
			}
		} else if opts.Output != "" {
			fmt.Printf("Finished writing %d messages to %s\n", len(records), opts.Output)
		}
	}

	if opts.SaveCookies != "" {
		if serr := sess.Jar().Save(opts.SaveCookies); serr != nil {
			logger.Error().Err(serr).Msg("failed to save cookies")
		}
	}

	snap := rec.Snapshot()
	logger.Info().
		Str("event", "run.summary").
		Int("records", len(records)).
		Float64("requests_total", snap.RequestsTotal).
		Float64("retries_total", snap.RetriesTotal).
		Float64("fallback_total", snap.FallbackTotal).
		Msg("run finished")

	return classifyFetchErr(fetchErr)
}

// classifyFetchErr maps the clean-exit error classes from spec.md §7
// (NoContinuation, VideoUnavailable/NotFound, AbortConditionsSatisfied,
// context cancellation) to a nil return, since these terminate the
// polling loop without indicating CLI failure; everything else is
// returned as-is so main can exit non-zero.
func classifyFetchErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, cerrors.ErrNoContinuation),
		errors.Is(err, cerrors.ErrVideoUnavailable),
		errors.Is(err, cerrors.ErrVideoNotFound),
		errors.Is(err, cerrors.ErrAbortConditionsSatisfied),
		errors.Is(err, context.Canceled):
		fmt.Println(err)
		return nil
	default:
		return err
	}
}

func loadCookieJar(path string) (*cookies.Jar, error) {
	if path == "" {
		return cookies.New()
	}
	return cookies.Load(path)
}
