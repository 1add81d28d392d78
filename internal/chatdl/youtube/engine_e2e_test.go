package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lbmaian/chatdl/internal/chatdl/httpsession"
	"github.com/lbmaian/chatdl/internal/chatdl/model"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time        { return f.t }
func (f *fakeClock) Sleep(time.Duration)   {}

func embedBlob(t *testing.T, anchor string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return anchor + string(data) + ";"
}

func TestFetch_LiveMode_EndToEnd(t *testing.T) {
	playerResponse := map[string]any{
		"videoDetails": map[string]any{"isUpcoming": false, "isLiveContent": true},
		"playabilityStatus": map[string]any{"status": "OK"},
	}
	initialData := map[string]any{
		"contents": map[string]any{
			"twoColumnWatchNextResults": map[string]any{
				"conversationBar": map[string]any{
					"liveChatRenderer": map[string]any{
						"header": map[string]any{
							"liveChatHeaderRenderer": map[string]any{
								"viewSelector": map[string]any{
									"sortFilterSubMenuRenderer": map[string]any{
										"subMenuItems": []any{
											map[string]any{
												"title": "Live chat",
												"continuation": map[string]any{
													"reloadContinuationData": map[string]any{"continuation": "SEEDTOK"},
												},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
	watchHTML := "<html><script>" +
		embedBlob(t, "ytInitialPlayerResponse = ", playerResponse) +
		embedBlob(t, "ytInitialData = ", initialData) +
		"</script></html>"

	ytcfg := map[string]any{
		"INNERTUBE_API_VERSION": "v1",
		"INNERTUBE_API_KEY":     "KEY123",
		"INNERTUBE_CONTEXT":     map[string]any{"client": map[string]any{"clientName": "WEB"}},
	}
	bootstrapData := map[string]any{
		"contents": map[string]any{
			"liveChatRenderer": map[string]any{
				"continuations": []any{
					map[string]any{"invalidationContinuationData": map[string]any{"continuation": "TOK2"}},
				},
			},
		},
	}
	bootstrapHTML := "<html><script>" +
		embedBlob(t, "ytcfg.set(", ytcfg) +
		embedBlob(t, "ytInitialData = ", bootstrapData) +
		"</script></html>"

	apiCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(watchHTML))
	})
	mux.HandleFunc("/live_chat", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(bootstrapHTML))
	})
	mux.HandleFunc("/youtubei/v1/live_chat/get_live_chat", func(w http.ResponseWriter, r *http.Request) {
		apiCalls++
		if apiCalls == 1 {
			json.NewEncoder(w).Encode(map[string]any{
				"continuationContents": map[string]any{
					"liveChatContinuation": map[string]any{
						"actions": []any{
							map[string]any{
								"addChatItemAction": map[string]any{
									"item": textMessageItem("hello chat", "Alice"),
								},
							},
						},
						"continuations": []any{
							map[string]any{"invalidationContinuationData": map[string]any{"continuation": "TOK3"}},
						},
					},
				},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"continuationContents": map[string]any{
				"liveChatContinuation": map[string]any{},
			},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	origHome := ytHome
	ytHome = srv.URL
	t.Cleanup(func() { ytHome = origHome })

	sess, err := httpsession.New(nil)
	require.NoError(t, err)

	e := New(sess)
	clock := &fakeClock{t: time.Now()}
	records, err := e.Fetch(context.Background(), Options{
		VideoID:       "vid1",
		ChatType:      "live",
		MessageFilter: model.FilterAll,
		Clock:         clock,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "hello chat", records[0].Message)
	require.Equal(t, "Alice", records[0].Author)
	require.Equal(t, 2, apiCalls)
}
