// Package twitch implements C7: a cursor-paginated fetch over TW's
// public video-comments JSON endpoint. Unlike the YT engine, there is
// no continuation-chained polling state machine here - just pages.
package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	cerrors "github.com/lbmaian/chatdl/internal/chatdl/errors"
	"github.com/lbmaian/chatdl/internal/chatdl/httpsession"
	"github.com/lbmaian/chatdl/internal/chatdl/model"
	"github.com/lbmaian/chatdl/internal/chatdl/normalize"
	"github.com/lbmaian/chatdl/internal/log"
)

// apiBase is the TW comments API host. It's a var, not a const, so
// tests can point it at an httptest server instead of the real host.
var apiBase = "https://api.twitch.tv"

const commentsPathTemplate = "/v5/videos/%s/comments"

// PublicClientID is the long-standing public Twitch API client id used
// by read-only tooling (no user auth, no write scopes) for the legacy
// v5 comments endpoint. Callers may supply their own via
// Options.ClientID; this is only the CLI's default.
const PublicClientID = "kimne78kx3ncx6brgo4mv6wki5h1ko"

// Comment is one raw entry of a comments envelope's "comments" array.
type Comment struct {
	CreatedAt            string `json:"created_at"`
	ContentOffsetSeconds float64 `json:"content_offset_seconds"`
	Commenter            struct {
		DisplayName string `json:"display_name"`
	} `json:"commenter"`
	Message struct {
		Body string `json:"body"`
	} `json:"message"`
}

type commentsEnvelope struct {
	Comments []Comment `json:"comments"`
	Next     string    `json:"_next"`
	Error    string    `json:"error"`
}

// Options configures a FetchMessages call.
type Options struct {
	VideoID      string
	ClientID     string
	StartSeconds *int64
	EndSeconds   *int64
	// Callback, if set, is invoked for every record as it's produced,
	// in addition to it being appended to the returned slice.
	Callback func(*model.Record)
}

// FetchMessages pages through every comment on a TW video, normalizing
// each into a canonical Record, skipping anything before
// opts.StartSeconds and stopping once opts.EndSeconds is exceeded.
func FetchMessages(ctx context.Context, sess *httpsession.Session, opts Options) ([]*model.Record, error) {
	logger := log.WithComponent("twitch").With().Str("video_id", opts.VideoID).Logger()

	var records []*model.Record
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		reqURL := buildURL(opts, cursor)
		body, err := sess.Get(ctx, reqURL, nil)
		if err != nil {
			return records, fmt.Errorf("twitch: fetching comments: %w", err)
		}

		env, err := decodeEnvelope(body)
		if err != nil {
			return records, err
		}
		if env.Error != "" {
			return records, fmt.Errorf("%w: %s", cerrors.ErrTwitchError, env.Error)
		}

		done := false
		for _, c := range env.Comments {
			rec, err := normalizeComment(c)
			if err != nil {
				logger.Warn().Err(err).Msg("skipping unparseable twitch comment")
				continue
			}
			if opts.StartSeconds != nil && rec.TimeInSeconds != nil && *rec.TimeInSeconds < *opts.StartSeconds {
				continue
			}
			if opts.EndSeconds != nil && rec.TimeInSeconds != nil && *rec.TimeInSeconds > *opts.EndSeconds {
				done = true
				break
			}
			records = append(records, rec)
			if opts.Callback != nil {
				opts.Callback(rec)
			}
		}

		if done || env.Next == "" || env.Next == cursor {
			return records, nil
		}
		cursor = env.Next
	}
}

func decodeEnvelope(body []byte) (*commentsEnvelope, error) {
	var env commentsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: decoding comments envelope: %v", cerrors.ErrParsing, err)
	}
	return &env, nil
}

func buildURL(opts Options, cursor string) string {
	u := apiBase + fmt.Sprintf(commentsPathTemplate, url.PathEscape(opts.VideoID))
	q := url.Values{}
	q.Set("client_id", opts.ClientID)
	if cursor != "" {
		q.Set("cursor", cursor)
	} else if opts.StartSeconds != nil {
		q.Set("content_offset_seconds", strconv.FormatInt(*opts.StartSeconds, 10))
	}
	return u + "?" + q.Encode()
}

func normalizeComment(c Comment) (*model.Record, error) {
	micros, err := normalize.TimestampToMicroseconds(c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("twitch: parsing created_at %q: %w", c.CreatedAt, err)
	}
	secs := int64(c.ContentOffsetSeconds)

	return &model.Record{
		Timestamp:     &micros,
		Datetime:      normalize.TimestampMicrosToDatetime(micros),
		TimeText:      normalize.SecondsToTime(secs),
		TimeInSeconds: &secs,
		Author:        c.Commenter.DisplayName,
		Message:       c.Message.Body,
	}, nil
}
