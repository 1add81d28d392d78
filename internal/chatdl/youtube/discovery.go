package youtube

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	cerrors "github.com/lbmaian/chatdl/internal/chatdl/errors"
	"github.com/lbmaian/chatdl/internal/chatdl/model"
	"github.com/lbmaian/chatdl/internal/chatdl/scrape"
	"github.com/lbmaian/chatdl/internal/log"
	"github.com/lbmaian/chatdl/internal/pipeline/fsm"
)

const defaultNoChatError = "Video does not have a chat replay."

// upcomingRetryMinSecs/MaxSecs bound the jittered Phase I retry wait
// for a stream that hasn't started producing a chat continuation yet.
const (
	upcomingRetryMinSecs = 45
	upcomingRetryMaxSecs = 60
)

// runDiscovery implements Phase I: repeatedly fetch the watch page
// until a chat continuation title is found, raising NoChatReplay if
// the video will never have one.
func (e *Engine) runDiscovery(ctx context.Context, machine *fsm.Machine[phase, event], opts Options) (*model.EngineConfig, string, map[string]string, error) {
	logger := log.WithComponent("youtube").With().Str("video_id", opts.VideoID).Logger()
	chatTypeField := titleCase(opts.ChatType)
	replayTitle := chatTypeField + " chat replay"
	liveTitle := chatTypeField + " chat"

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, "", nil, err
		}

		config, titleMap, err := e.fetchDiscoveryInfo(ctx, opts.VideoID)
		if err != nil {
			return nil, "", nil, err
		}

		switch {
		case titleMapHas(titleMap, replayTitle):
			config.Mode = model.ModeReplay
			return config, replayTitle, titleMap, nil
		case titleMapHas(titleMap, liveTitle):
			config.Mode = model.ModeLive
			return config, liveTitle, titleMap, nil
		case config.IsUpcoming || config.IsLive:
			if opts.AbortFormula != nil {
				e.abortState.UpdateScheduledStartTime(config.ScheduledStartTime)
				if err := opts.AbortFormula.Check(&e.abortState, opts.Clock.Now()); err != nil {
					return nil, "", nil, err
				}
			}
			minSecs, maxSecs := upcomingRetryMinSecs, upcomingRetryMaxSecs
			if opts.UpcomingRetryMinSecs > 0 && opts.UpcomingRetryMaxSecs >= opts.UpcomingRetryMinSecs {
				minSecs, maxSecs = opts.UpcomingRetryMinSecs, opts.UpcomingRetryMaxSecs
			}
			waitSecs := minSecs + rand.Intn(maxSecs-minSecs+1)
			logger.Debug().
				Int("attempt", attempt).
				Int("wait_secs", waitSecs).
				Str("reason", config.NoChatError).
				Msg("upcoming stream has no chat continuation yet, retrying")
			opts.Clock.Sleep(time.Duration(waitSecs) * time.Second)
			if _, err := machine.Fire(ctx, eventRetryUpcoming); err != nil {
				return nil, "", nil, err
			}
			continue
		default:
			msg := config.NoChatError
			if msg == "" {
				msg = defaultNoChatError
			}
			return nil, "", nil, fmt.Errorf("%w: %s", cerrors.ErrNoChatReplay, msg)
		}
	}
}

func titleMapHas(m map[string]string, title string) bool {
	_, ok := m[title]
	return ok
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// fetchDiscoveryInfo fetches the watch page and extracts an initial
// EngineConfig plus the continuation-by-title map, per §4.6 Phase I.
func (e *Engine) fetchDiscoveryInfo(ctx context.Context, videoID string) (*model.EngineConfig, map[string]string, error) {
	html, err := e.scraper.FetchPage(ctx, watchURL(videoID), nil)
	if err != nil {
		return nil, nil, err
	}

	playerResponse, err := scrape.Extract(html, scrape.BlobYtInitialPlayerResponse)
	if err != nil {
		return nil, nil, err
	}
	initialData, err := scrape.Extract(html, scrape.BlobYtInitialData)
	if err != nil {
		return nil, nil, err
	}

	config := &model.EngineConfig{VideoID: videoID}
	applyVideoDetails(config, playerResponse)
	applyPlayability(config, playerResponse)
	applyMicroformat(config, playerResponse)

	titleMap, noChatErr := buildContinuationByTitleMap(initialData)
	if noChatErr != "" {
		config.NoChatError = noChatErr
	}

	return config, titleMap, nil
}

// applyVideoDetails projects videoDetails.{isUpcoming,isLiveContent}.
func applyVideoDetails(config *model.EngineConfig, playerResponse map[string]any) {
	details, ok := navigate(playerResponse, "videoDetails")
	if !ok {
		return
	}
	if v, ok := details["isUpcoming"].(bool); ok {
		config.IsUpcoming = v
	}
	if v, ok := details["isLiveContent"].(bool); ok {
		config.IsLive = v
	}
}

// applyPlayability projects the playabilityStatus string and,
// when present, the scheduled start time buried in the offline-slate
// renderer.
func applyPlayability(config *model.EngineConfig, playerResponse map[string]any) {
	if status, ok := navString(playerResponse, "playabilityStatus", "status"); ok {
		config.PlayabilityStatus = status
	}
	ts, ok := navString(playerResponse,
		"playabilityStatus", "liveStreamability", "liveStreamabilityRenderer",
		"offlineSlate", "liveStreamOfflineSlateRenderer", "scheduledStartTime")
	if !ok {
		return
	}
	secs, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return
	}
	t := time.Unix(secs, 0)
	config.ScheduledStartTime = &t
}

// applyMicroformat is a no-op placeholder for fields this engine
// doesn't currently surface (category, description); kept as its own
// sub-extractor per §4.6's "four disjoint sub-extractors" so a future
// field addition has an obvious home instead of growing
// applyVideoDetails or applyPlayability.
func applyMicroformat(config *model.EngineConfig, playerResponse map[string]any) {
	_ = playerResponse
}

// buildContinuationByTitleMap implements the conversationBar walk from
// §4.6 Phase I, falling back to a "no chat" message when the structure
// is absent entirely.
func buildContinuationByTitleMap(initialData map[string]any) (map[string]string, string) {
	subMenuItems, ok := navSlice(initialData,
		"contents", "twoColumnWatchNextResults", "conversationBar", "liveChatRenderer",
		"header", "liveChatHeaderRenderer", "viewSelector", "sortFilterSubMenuRenderer", "subMenuItems")
	if !ok {
		return map[string]string{}, extractNoChatMessage(initialData)
	}

	titleMap := make(map[string]string, len(subMenuItems))
	for _, raw := range subMenuItems {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		title, ok := item["title"].(string)
		if !ok {
			continue
		}
		continuation, ok := navString(item, "continuation", "reloadContinuationData", "continuation")
		if !ok {
			continue
		}
		titleMap[title] = continuation
	}
	return titleMap, ""
}

func extractNoChatMessage(initialData map[string]any) string {
	runs, ok := navSlice(initialData,
		"contents", "twoColumnWatchNextResults", "conversationBar", "conversationBarRenderer",
		"availabilityMessage", "messageRenderer", "text", "runs")
	if !ok {
		return ""
	}
	var sb strings.Builder
	for _, raw := range runs {
		run, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if text, ok := run["text"].(string); ok {
			sb.WriteString(text)
		}
	}
	return sb.String()
}
