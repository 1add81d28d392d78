package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeToSeconds converts a "[-]hh:mm:ss"-shaped offset string to
// seconds. Each field is weighted by 60^i from the right, and the
// whole result is negated if the string starts with '-'.
func TimeToSeconds(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty time string")
	}
	negative := s[0] == '-'
	trimmed := strings.TrimPrefix(s, "-")
	trimmed = strings.ReplaceAll(trimmed, ",", "")
	parts := strings.Split(trimmed, ":")

	var total int64
	weight := int64(1)
	for i := len(parts) - 1; i >= 0; i-- {
		n, err := strconv.ParseInt(parts[i], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing time component %q: %w", parts[i], err)
		}
		if n < 0 {
			n = -n
		}
		total += n * weight
		weight *= 60
	}
	if negative {
		total = -total
	}
	return total, nil
}

// SecondsToTime renders seconds as Go's "h:mm:ss"-equivalent text, the
// Go analogue of Python's str(timedelta(seconds=seconds)), returning
// "" for zero.
func SecondsToTime(seconds int64) string {
	if seconds == 0 {
		return ""
	}
	negative := seconds < 0
	if negative {
		seconds = -seconds
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	sec := seconds % 60
	text := fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	if negative {
		text = "-" + text
	}
	return text
}

// EnsureSeconds parses t as an integer if possible, falling back to
// TimeToSeconds, falling back to def on total failure.
func EnsureSeconds(t string, def int64) int64 {
	if n, err := strconv.ParseInt(t, 10, 64); err == nil {
		return n
	}
	if n, err := TimeToSeconds(t); err == nil {
		return n
	}
	return def
}

// TimestampMicrosToDatetime formats a Unix-epoch-microseconds
// timestamp as "YYYY-MM-DD HH:MM:SS" local time.
func TimestampMicrosToDatetime(us int64) string {
	t := time.UnixMicro(us)
	return t.Format("2006-01-02 15:04:05")
}

// TimestampToMicroseconds converts an RFC3339-ish timestamp
// (nanosecond precision preserved via manual fractional-second
// parsing, since the standard library's RFC3339Nano path loses
// precision guarantees on some inputs) to Unix-epoch microseconds.
func TimestampToMicroseconds(ts string) (int64, error) {
	ts = strings.TrimSuffix(ts, "Z")
	whole := ts
	var frac string
	if i := strings.Index(ts, "."); i >= 0 {
		whole = ts[:i]
		frac = ts[i+1:]
	}
	t, err := time.Parse("2006-01-02T15:04:05", whole)
	if err != nil {
		return 0, fmt.Errorf("parsing timestamp %q: %w", ts, err)
	}
	var fracSecs float64
	if frac != "" {
		f, err := strconv.ParseFloat("0."+frac, 64)
		if err == nil {
			fracSecs = f
		}
	}
	micros := t.Unix()*1_000_000 + int64(fracSecs*1e6+0.5)
	return micros, nil
}
