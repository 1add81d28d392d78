package youtube

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lbmaian/chatdl/internal/chatdl/abort"
	cerrors "github.com/lbmaian/chatdl/internal/chatdl/errors"
	"github.com/lbmaian/chatdl/internal/chatdl/model"
	"github.com/lbmaian/chatdl/internal/chatdl/normalize"
	"github.com/lbmaian/chatdl/internal/log"
)

// runPoll implements Phase III: the continuation-chained polling loop.
// It always returns the buffer accumulated so far, alongside any error
// that caused the loop to exit - callers should flush the returned
// buffer regardless of a non-nil error, per §5's "exits the loop; the
// accumulated buffer is still returned".
func (e *Engine) runPoll(ctx context.Context, seedContinuation string, opts Options) ([]*model.Record, error) {
	logger := log.WithComponent("youtube").With().Str("video_id", e.config.VideoID).Logger()

	var records []*model.Record
	continuation := seedContinuation
	first := true

	var startSeconds int64
	if opts.StartSeconds != nil {
		startSeconds = *opts.StartSeconds
	}
	offsetMs := startSeconds * 1000

	for {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		changes := e.updateAbortState(ctx, e.config, opts.Clock, first)
		abort.LogStateChanges(changes)
		if opts.AbortFormula != nil {
			if err := opts.AbortFormula.Check(&e.abortState, opts.Clock.Now()); err != nil {
				return records, err
			}
		}

		var actions, continuations []any
		var fallbackTriggered bool
		var err error
		switch {
		case first:
			actions, continuations, err = e.firstBatch, e.firstContinuations, nil
		case e.useFallback:
			actions, continuations, err = e.fetchHTMLContinuation(ctx, continuation)
		default:
			actions, continuations, fallbackTriggered, err = e.fetchAPIBatch(ctx, continuation, offsetMs)
		}
		if err != nil {
			return records, err
		}
		if fallbackTriggered {
			e.useFallback = true
			logger.Info().Msg("api continuation lost session while fetching, switching to html fallback")
			continue
		}
		first = false

		for _, raw := range actions {
			rec, include, stop := e.dispatchAction(raw, opts)
			if stop {
				return records, nil
			}
			if rec == nil || !include {
				continue
			}
			records = append(records, rec)
			if opts.Callback != nil {
				opts.Callback(rec)
			}
		}

		if len(continuations) == 0 {
			return records, nil
		}
		entry, ok := continuations[0].(map[string]any)
		if !ok {
			return records, nil
		}
		token, timeoutMs, ok := unwrapContinuationEntry(entry)
		if ok {
			continuation = token
		}
		if timeoutMs > 0 {
			opts.Clock.Sleep(time.Duration(timeoutMs) * time.Millisecond)
		}

		if e.config.Mode == model.ModeReplay && len(actions) == 0 {
			return records, nil
		}
	}
}

// dispatchAction implements §4.6 Phase III step 5 for one raw action.
// It returns (nil, false, false) for actions to skip, (rec, true/false,
// false) for a normalized record (include reports whether it passes
// the filters/time-window rules), or (nil, _, true) to signal the loop
// should terminate immediately (end_time exceeded in replay mode).
func (e *Engine) dispatchAction(raw any, opts Options) (rec *model.Record, include bool, stop bool) {
	logger := log.WithComponent("youtube")

	action, ok := raw.(map[string]any)
	if !ok {
		return nil, false, false
	}

	var videoOffsetMsec *int64
	if replayWrap, ok := action["replayChatItemAction"].(map[string]any); ok {
		if v, present := replayWrap["videoOffsetTimeMsec"]; present {
			if ms, ok := toInt64(v); ok {
				videoOffsetMsec = &ms
			}
		}
		innerActions, _ := replayWrap["actions"].([]any)
		if len(innerActions) == 0 {
			return nil, false, false
		}
		inner, ok := innerActions[0].(map[string]any)
		if !ok {
			return nil, false, false
		}
		action = inner
	}

	_, payload, err := soleActionEntry(action)
	if err != nil {
		return nil, false, false
	}
	itemRaw, ok := payload["item"]
	if !ok {
		// missing item: usually a deletion, not a displayable message
		return nil, false, false
	}
	item, ok := itemRaw.(map[string]any)
	if !ok {
		return nil, false, false
	}

	rec, category, err := normalize.Item(item)
	if err != nil {
		logger.Warn().Err(err).Msg("skipping unparseable chat item")
		return nil, false, false
	}
	if category == normalize.CategoryIgnore {
		return nil, false, false
	}
	if opts.MessageFilter == model.FilterMessages && category == normalize.CategorySuperchat {
		return nil, false, false
	}
	if opts.MessageFilter == model.FilterSuperchat && category == normalize.CategoryMessage {
		return nil, false, false
	}

	if videoOffsetMsec != nil {
		rec.VideoOffsetTimeMsec = videoOffsetMsec
	}

	if opts.EndSeconds != nil && rec.TimeInSeconds != nil && *rec.TimeInSeconds > *opts.EndSeconds {
		return nil, false, true
	}

	include = e.config.Mode == model.ModeLive ||
		opts.StartSeconds == nil ||
		(rec.TimeInSeconds != nil && *rec.TimeInSeconds >= *opts.StartSeconds)

	return rec, include, false
}

func soleActionEntry(action map[string]any) (string, map[string]any, error) {
	delete(action, "clickTrackingParams")
	for k, v := range action {
		payload, ok := v.(map[string]any)
		if !ok {
			continue
		}
		return k, payload, nil
	}
	return "", nil, fmt.Errorf("youtube: action has no recognizable renderer key")
}

// fetchAPIBatch issues a Phase III API continuation POST, returning the
// raw actions/continuations arrays, or fallbackTriggered=true for the
// members-only-unlist race from §4.6 step 4.
func (e *Engine) fetchAPIBatch(ctx context.Context, continuation string, offsetMs int64) (actions, continuations []any, fallbackTriggered bool, err error) {
	method := "get_live_chat"
	payload := map[string]any{
		"context":      e.config.Context,
		"continuation": continuation,
	}
	if e.config.Mode == model.ModeReplay {
		method = "get_live_chat_replay"
		payload["currentPlayerState"] = map[string]any{
			"playerOffsetMs": strconv.FormatInt(offsetMs, 10),
		}
	}

	body, err := e.sess.PostJSON(ctx, apiURL(e.config, method), payload, nil)
	if err != nil {
		return nil, nil, false, fmt.Errorf("youtube: polling continuation: %w", err)
	}
	resp, err := decodeJSONMap(body)
	if err != nil {
		return nil, nil, false, err
	}
	if apiErr, ok := navigate(resp, "error"); ok {
		return nil, nil, false, classifyAPIError(apiErr)
	}

	loggedOut, _ := navBool(resp, "responseContext", "mainAppWebResponseContext", "loggedOut")

	cc, ok := navigate(resp, "continuationContents", "liveChatContinuation")
	if !ok {
		if loggedOut && !e.config.LoggedOut {
			return nil, nil, true, nil
		}
		return nil, nil, false, cerrors.ErrNoContinuation
	}

	actions, _ = cc["actions"].([]any)
	continuations, _ = cc["continuations"].([]any)
	return actions, continuations, false, nil
}

// fetchHTMLContinuation implements the use_non_api_fallback path: the
// same non-API continuation page Phase II fetches, but for a
// subsequent token instead of the seed one.
func (e *Engine) fetchHTMLContinuation(ctx context.Context, continuation string) (actions, continuations []any, err error) {
	bootstrap, err := e.runBootstrap(ctx, continuation)
	if err != nil && !errors.Is(err, cerrors.ErrNoContinuation) {
		return nil, nil, err
	}
	if bootstrap == nil {
		return nil, nil, nil
	}
	return bootstrap.actions, bootstrap.continuationsRaw, nil
}
