package sink

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
)

func ptr[T any](v T) *T { return &v }

func TestFormatFor(t *testing.T) {
	cases := map[string]Format{
		"out.json": FormatJSON,
		"out.csv":  FormatCSV,
		"out.txt":  FormatText,
		"out":      FormatText,
	}
	for path, want := range cases {
		if got := FormatFor(path); got != want {
			t.Errorf("FormatFor(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestFormatMessage_Full(t *testing.T) {
	r := &model.Record{
		Datetime:   "2026-01-01 00:00:00",
		AuthorType: model.AuthorMember,
		Amount:     "$5.00",
		Author:     "Alice",
		Message:    "hi",
	}
	got := FormatMessage(r)
	want := "[2026-01-01 00:00:00] (member) *$5.00* Alice:\thi"
	require.Equal(t, want, got)
}

func TestFormatMessage_OmitsAbsentSegments(t *testing.T) {
	r := &model.Record{TimeText: "01:02:03", Author: "Bob", Message: "hey"}
	got := FormatMessage(r)
	want := "[01:02:03] Bob:\they"
	require.Equal(t, want, got)
}

func TestSink_Text_SuppressesTickerButKeepsInBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	s, err := Open(path, "\n")
	require.NoError(t, err)

	require.NoError(t, s.Append(&model.Record{Author: "A", Message: "normal"}))
	require.NoError(t, s.Append(&model.Record{Author: "A", Message: "paid", TickerDuration: ptr(int64(5))}))
	require.NoError(t, s.Close())

	require.Len(t, s.Buffer(), 2)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, bomBytes))
	body := string(data[len(bomBytes):])
	require.Contains(t, body, "normal")
	require.NotContains(t, body, "paid")
}

func TestSink_JSON_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	s, err := Open(path, "")
	require.NoError(t, err)

	in := []*model.Record{
		{Author: "A", Message: "one", Timestamp: ptr(int64(1))},
		{Author: "B", Message: "two", Timestamp: ptr(int64(2))},
	}
	for _, r := range in {
		require.NoError(t, s.Append(r))
	}
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, bomBytes))

	var out []*model.Record
	require.NoError(t, json.Unmarshal(data[len(bomBytes):], &out))
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSink_CSV_UnionHeaderSortedAndCustomNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s, err := Open(path, "|")
	require.NoError(t, err)

	require.NoError(t, s.Append(&model.Record{Author: "A", Message: "m1"}))
	require.NoError(t, s.Append(&model.Record{Author: "B", Message: "m2", Amount: "$1"}))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, bomBytes))
	body := string(data[len(bomBytes):])

	lines := splitCustom(body, "|")
	require.GreaterOrEqual(t, len(lines), 3)
	require.Equal(t, "amount,author,message", lines[0])
}

func splitCustom(s, sep string) []string {
	var out []string
	for {
		i := indexOf(s, sep)
		if i < 0 {
			if s != "" {
				out = append(out, s)
			}
			break
		}
		out = append(out, s[:i])
		s = s[i+len(sep):]
	}
	return out
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
