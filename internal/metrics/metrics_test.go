package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecorderSnapshot(t *testing.T) {
	r := New()

	r.IncRequest("www.youtube.com")
	r.IncRequest("api.twitch.tv")
	r.IncRecord("message")
	r.IncRecord("message")
	r.IncRecord("superchat")
	r.IncRetry("retryable_status")
	r.IncFallback("vid1")
	r.IncPollTick()
	r.IncPollTick()
	r.IncPollTick()

	snap := r.Snapshot()
	require.Equal(t, 2.0, snap.RequestsTotal)
	require.Equal(t, 3.0, snap.RecordsTotal)
	require.Equal(t, 1.0, snap.RetriesTotal)
	require.Equal(t, 1.0, snap.FallbackTotal)
	require.Equal(t, 3.0, snap.PollTicksTotal)
}

func TestNewRecordersAreIndependent(t *testing.T) {
	a := New()
	b := New()

	a.IncPollTick()

	require.Equal(t, 1.0, a.Snapshot().PollTicksTotal)
	require.Equal(t, 0.0, b.Snapshot().PollTicksTotal)
}
