package main

import (
	"fmt"
	"regexp"

	cerrors "github.com/lbmaian/chatdl/internal/chatdl/errors"
)

// ytVideoIDRegex and twVideoIDRegex are the same anchor patterns the
// Python original uses in get_chat_replay to demux a URL before
// dispatching to get_youtube_messages/get_twitch_messages - a
// trivial regex demux, per spec.md §1's "out of scope, external
// collaborator" framing. It still needs a home in the CLI binary that
// actually takes a URL argument, so it lives here rather than in
// either platform package.
var (
	ytVideoIDRegex = regexp.MustCompile(`(?:/|%3D|v=|vi=)([0-9A-Za-z_-]{11})(?:[%#?&]|$)`)
	twVideoIDRegex = regexp.MustCompile(`(?:/videos/|/v/)(\d+)`)
)

// platform identifies which chat adapter a URL demuxes to.
type platform int

const (
	platformYouTube platform = iota
	platformTwitch
)

// demux extracts the platform and opaque video id from a URL, per the
// original's __YT_REGEX/__TWITCH_REGEX pair tried in that order.
func demux(rawURL string) (platform, string, error) {
	if m := ytVideoIDRegex.FindStringSubmatch(rawURL); m != nil {
		return platformYouTube, m[1], nil
	}
	if m := twVideoIDRegex.FindStringSubmatch(rawURL); m != nil {
		return platformTwitch, m[1], nil
	}
	return 0, "", fmt.Errorf("%w: %s", cerrors.ErrInvalidURL, rawURL)
}
