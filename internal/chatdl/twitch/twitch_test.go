package twitch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lbmaian/chatdl/internal/chatdl/httpsession"
)

func newComment(createdAt string, offset float64, author, body string) Comment {
	c := Comment{CreatedAt: createdAt, ContentOffsetSeconds: offset}
	c.Commenter.DisplayName = author
	c.Message.Body = body
	return c
}

func withTestServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	orig := apiBase
	apiBase = srv.URL
	t.Cleanup(func() { apiBase = orig })
}

func TestFetchMessages_PaginatesAndNormalizes(t *testing.T) {
	page1 := commentsEnvelope{
		Comments: []Comment{
			newComment("2026-01-01T00:00:00.123Z", 1.0, "Alice", "hi"),
			newComment("2026-01-01T00:00:01.000Z", 2.0, "Bob", "yo"),
		},
		Next: "cursor2",
	}
	page2 := commentsEnvelope{
		Comments: []Comment{
			newComment("2026-01-01T00:00:02.000Z", 3.0, "Carol", "sup"),
		},
	}

	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cursor") == "cursor2" {
			json.NewEncoder(w).Encode(page2)
			return
		}
		json.NewEncoder(w).Encode(page1)
	})

	sess, err := httpsession.New(nil)
	require.NoError(t, err)

	records, err := FetchMessages(context.Background(), sess, Options{VideoID: "123", ClientID: "abc"})
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "Alice", records[0].Author)
	require.Equal(t, "Carol", records[2].Author)
}

func TestFetchMessages_SurfacesEnvelopeError(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(commentsEnvelope{Error: "video not found"})
	})

	sess, err := httpsession.New(nil)
	require.NoError(t, err)

	_, err = FetchMessages(context.Background(), sess, Options{VideoID: "123", ClientID: "abc"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "video not found")
}

func TestFetchMessages_SkipsBeforeStartStopsAfterEnd(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(commentsEnvelope{
			Comments: []Comment{
				newComment("2026-01-01T00:00:01.000Z", 1, "A", "before"),
				newComment("2026-01-01T00:00:05.000Z", 5, "B", "in range"),
				newComment("2026-01-01T00:00:10.000Z", 10, "C", "after"),
			},
		})
	})

	sess, err := httpsession.New(nil)
	require.NoError(t, err)

	start, end := int64(3), int64(7)
	records, err := FetchMessages(context.Background(), sess, Options{
		VideoID: "123", ClientID: "abc", StartSeconds: &start, EndSeconds: &end,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "in range", records[0].Message)
}

func TestNormalizeComment(t *testing.T) {
	c := newComment("2026-01-01T00:00:01.500Z", 1.5, "Alice", "hello")
	rec, err := normalizeComment(c)
	require.NoError(t, err)
	require.Equal(t, "Alice", rec.Author)
	require.Equal(t, "hello", rec.Message)
	require.NotNil(t, rec.TimeInSeconds)
	require.Equal(t, int64(1), *rec.TimeInSeconds)
	require.NotNil(t, rec.Timestamp)
}

func TestDecodeEnvelope_SurfacesError(t *testing.T) {
	env, err := decodeEnvelope([]byte(`{"error": "video not found"}`))
	require.NoError(t, err)
	require.Equal(t, "video not found", env.Error)
}
