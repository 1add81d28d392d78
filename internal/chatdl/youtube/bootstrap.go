package youtube

import (
	"context"
	"fmt"

	cerrors "github.com/lbmaian/chatdl/internal/chatdl/errors"
	"github.com/lbmaian/chatdl/internal/chatdl/scrape"
)

// bootstrapResult carries everything Phase II extracts from the
// non-API continuation page: the INNERTUBE client identity (api
// version/key/context) and the seed continuation for Phase III.
type bootstrapResult struct {
	apiVersion string
	apiKey     string
	context    map[string]any
	loggedOut  bool

	continuation string
	timeoutMs    int64

	actions          []any
	continuationsRaw []any
}

// runBootstrap implements Phase II: fetch the non-API continuation
// page, extract ytcfg and the seed continuation, and the logged_out
// flag carried alongside it.
func (e *Engine) runBootstrap(ctx context.Context, seedContinuation string) (*bootstrapResult, error) {
	html, err := e.scraper.FetchPage(ctx, bootstrapURL(seedContinuation), nil)
	if err != nil {
		return nil, err
	}

	ytcfg, err := scrape.Extract(html, scrape.BlobYtcfg)
	if err != nil {
		return nil, err
	}

	result := &bootstrapResult{}
	var ok bool
	if result.apiVersion, ok = navString(ytcfg, "INNERTUBE_API_VERSION"); !ok {
		return nil, fmt.Errorf("%w: ytcfg missing INNERTUBE_API_VERSION", cerrors.ErrParsing)
	}
	if result.apiKey, ok = navString(ytcfg, "INNERTUBE_API_KEY"); !ok {
		return nil, fmt.Errorf("%w: ytcfg missing INNERTUBE_API_KEY", cerrors.ErrParsing)
	}
	if result.context, ok = navigate(ytcfg, "INNERTUBE_CONTEXT"); !ok {
		return nil, fmt.Errorf("%w: ytcfg missing INNERTUBE_CONTEXT", cerrors.ErrParsing)
	}

	initialData, err := scrape.Extract(html, scrape.BlobYtInitialData)
	if err != nil {
		return nil, err
	}

	if loggedOut, ok := navBool(initialData, "responseContext", "mainAppWebResponseContext", "loggedOut"); ok {
		result.loggedOut = loggedOut
	}

	liveChatRenderer, ok := navigate(initialData, "contents", "liveChatRenderer")
	if !ok {
		return nil, fmt.Errorf("%w: bootstrap page missing liveChatRenderer", cerrors.ErrNoContinuation)
	}

	continuations, _ := liveChatRenderer["continuations"].([]any)
	if len(continuations) == 0 {
		return nil, fmt.Errorf("%w: bootstrap page missing chat continuation", cerrors.ErrNoContinuation)
	}
	entry, ok := continuations[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: bootstrap continuation entry malformed", cerrors.ErrNoContinuation)
	}
	token, timeoutMs, ok := unwrapContinuationEntry(entry)
	if !ok {
		return nil, fmt.Errorf("%w: bootstrap continuation entry missing continuation token", cerrors.ErrNoContinuation)
	}
	result.continuation = token
	result.timeoutMs = timeoutMs
	result.actions, _ = liveChatRenderer["actions"].([]any)
	result.continuationsRaw = continuations

	return result, nil
}
