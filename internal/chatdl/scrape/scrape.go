// Package scrape implements C2: fetching a YT HTML page and
// extracting the embedded JSON blobs used to seed the engine.
package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	cerrors "github.com/lbmaian/chatdl/internal/chatdl/errors"
	"github.com/lbmaian/chatdl/internal/chatdl/httpsession"
	"github.com/lbmaian/chatdl/internal/log"
)

// Blob names recognized by Extract.
const (
	BlobYtcfg                   = "ytcfg"
	BlobYtInitialPlayerResponse = "ytInitialPlayerResponse"
	BlobYtInitialData           = "ytInitialData"
)

// errorPageSentinel marks a transient error page YT serves on
// visibility changes; seeing it triggers exactly one automatic
// re-fetch.
const errorPageSentinel = "window.ERROR_PAGE"

var blobAnchors = map[string]*regexp.Regexp{
	BlobYtcfg:                   regexp.MustCompile(`\bytcfg\s*\.\s*set\(\s*(\{)`),
	BlobYtInitialPlayerResponse: regexp.MustCompile(`\bytInitialPlayerResponse\s*=\s*(\{)`),
	BlobYtInitialData:           regexp.MustCompile(`(?:\bwindow\s*\[\s*["']ytInitialData["']\s*\]|\bytInitialData)\s*=\s*(\{)`),
}

// Scraper fetches pages through a shared HTTP session and extracts
// named embedded JSON blobs.
type Scraper struct {
	sess *httpsession.Session
}

// New builds a Scraper backed by sess.
func New(sess *httpsession.Session) *Scraper {
	return &Scraper{sess: sess}
}

// FetchPage retrieves the HTML at url, automatically re-fetching once
// if the page is YT's transient error page.
func (s *Scraper) FetchPage(ctx context.Context, url string, headers map[string]string) (string, error) {
	body, err := s.sess.Get(ctx, url, headers)
	if err != nil {
		return "", err
	}
	html := string(body)
	if strings.Contains(html, errorPageSentinel) {
		log.WithComponent("scrape").Warn().Str("url", url).Msg("transient error page detected, re-fetching once")
		body, err = s.sess.Get(ctx, url, headers)
		if err != nil {
			return "", err
		}
		html = string(body)
	}
	return html, nil
}

// Extract finds the named blob in html and decodes it leniently: the
// anchor locates the opening brace, and a streaming JSON decoder
// consumes exactly one valid value, ignoring whatever trailing script
// text follows it (the Go analogue of Python's
// json.JSONDecoder().raw_decode).
func Extract(html, blobName string) (map[string]any, error) {
	anchor, ok := blobAnchors[blobName]
	if !ok {
		return nil, fmt.Errorf("%w: unknown blob name %q", cerrors.ErrParsing, blobName)
	}
	loc := anchor.FindStringSubmatchIndex(html)
	if loc == nil {
		return nil, fmt.Errorf("%w: unable to locate %s in page", cerrors.ErrParsing, blobName)
	}
	// loc[2:4] is the submatch covering the opening brace.
	start := loc[2]

	dec := json.NewDecoder(strings.NewReader(html[start:]))
	var blob map[string]any
	if err := dec.Decode(&blob); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", cerrors.ErrParsing, blobName, err)
	}
	return blob, nil
}
