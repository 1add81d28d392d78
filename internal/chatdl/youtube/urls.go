package youtube

import (
	"fmt"
	"net/url"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
)

// ytHome is a var, not a const, so tests can point it at an httptest
// server instead of the real host.
var ytHome = "https://www.youtube.com"

// watchURL is the Phase I discovery page.
func watchURL(videoID string) string {
	return fmt.Sprintf("%s/watch?v=%s", ytHome, url.QueryEscape(videoID))
}

// bootstrapURL is the Phase II non-API continuation page: the same
// live_chat HTML surface the watch page's embedded player links to,
// requested directly with the seed continuation token so ytcfg and
// the first real continuation can be scraped without an API call.
func bootstrapURL(continuation string) string {
	return fmt.Sprintf("%s/live_chat?continuation=%s&is_popout=1", ytHome, url.QueryEscape(continuation))
}

// apiURL builds an INNERTUBE-style youtubei live_chat endpoint URL for
// the given method ("get_live_chat", "get_live_chat_replay"); the
// heartbeat endpoint is built by heartbeatURL.
func apiURL(config *model.EngineConfig, method string) string {
	return fmt.Sprintf("%s/youtubei/%s/live_chat/%s?key=%s", ytHome, config.APIVersion, method, config.APIKey)
}

// heartbeatURL builds the player/heartbeat endpoint URL.
func heartbeatURL(config *model.EngineConfig) string {
	return fmt.Sprintf("%s/youtubei/%s/player/heartbeat?key=%s&alt=json", ytHome, config.APIVersion, config.APIKey)
}
