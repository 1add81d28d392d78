package normalize

import (
	"strconv"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
)

// anyToInt64 coerces the loosely-typed JSON-ish values the renderer
// payloads arrive as (float64 from a decoded blob, int64/int, or a
// plain numeric string) into an int64. Any other type, json.Number
// included, reports false.
func anyToInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}

// colorOf accepts either a raw ARGB int (straight from a renderer
// payload) or an already-decomposed *model.Color (round-tripped
// through recordToData for the showItemEndpoint merge).
func colorOf(v any) *model.Color {
	if v == nil {
		return nil
	}
	if c, ok := v.(*model.Color); ok {
		return c
	}
	if argb, ok := anyToInt64(v); ok {
		c := colorFromARGB(argb)
		return &c
	}
	return nil
}

// recordFromData converts the working projection map into the typed
// canonical record, deriving datetime from timestamp, time_in_seconds
// from time_text, and decomposing raw ARGB color ints.
func recordFromData(data map[string]any) *model.Record {
	r := &model.Record{}

	if v, ok := data["timestamp"]; ok {
		if us, ok := anyToInt64(v); ok {
			r.Timestamp = &us
			r.Datetime = TimestampMicrosToDatetime(us)
		}
	}

	r.TimeText = stringOf(data["time_text"])
	if r.TimeText != "" {
		if secs, err := TimeToSeconds(r.TimeText); err == nil {
			r.TimeInSeconds = &secs
		}
	}

	if v, ok := data["video_offset_time_msec"]; ok {
		if ms, ok := anyToInt64(v); ok {
			r.VideoOffsetTimeMsec = &ms
		}
	}

	r.Author = stringOf(data["author"])
	r.AuthorID = stringOf(data["author_id"])
	if at, ok := data["author_type"].(model.AuthorType); ok {
		r.AuthorType = at
	}
	r.Badges = stringOf(data["badges"])

	r.Message = stringOf(data["message"])
	r.Amount = stringOf(data["amount"])

	r.HeaderColor = colorOf(data["header_color"])
	r.BodyColor = colorOf(data["body_color"])

	if v, ok := data["ticker_duration"]; ok {
		if secs, ok := anyToInt64(v); ok {
			r.TickerDuration = &secs
		}
	}

	return r
}

// recordToData is the inverse of recordFromData, used to fold a nested
// showItemEndpoint record back into the outer item's working map.
func recordToData(r *model.Record) map[string]any {
	data := make(map[string]any, 16)
	if r.Timestamp != nil {
		data["timestamp"] = *r.Timestamp
	}
	if r.TimeText != "" {
		data["time_text"] = r.TimeText
	}
	if r.VideoOffsetTimeMsec != nil {
		data["video_offset_time_msec"] = *r.VideoOffsetTimeMsec
	}
	if r.Author != "" {
		data["author"] = r.Author
	}
	if r.AuthorID != "" {
		data["author_id"] = r.AuthorID
	}
	if r.AuthorType != model.AuthorNone {
		data["author_type"] = r.AuthorType
	}
	if r.Badges != "" {
		data["badges"] = r.Badges
	}
	data["message"] = r.Message
	if r.Amount != "" {
		data["amount"] = r.Amount
	}
	if r.HeaderColor != nil {
		data["header_color"] = r.HeaderColor
	}
	if r.BodyColor != nil {
		data["body_color"] = r.BodyColor
	}
	if r.TickerDuration != nil {
		data["ticker_duration"] = *r.TickerDuration
	}
	return data
}
