package abort

import (
	"fmt"
	"strings"
	"time"
)

// strftimeDirectives maps the subset of C strftime directives the
// changed_scheduled_start_time predicate accepts to Go's reference-time
// layout tokens. This is deliberately a small, documented whitelist
// rather than a general strftime implementation: only what's needed to
// express "compare scheduled-start dates/times at some granularity".
var strftimeDirectives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'%': "%",
}

// compileStrftime translates a strftime-style format string into a Go
// reference-time layout, rejecting any directive outside the
// whitelist above.
func compileStrftime(format string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(format) {
			return "", fmt.Errorf("changed_scheduled_start_time: trailing %% in format %q", format)
		}
		layout, ok := strftimeDirectives[format[i]]
		if !ok {
			return "", fmt.Errorf("changed_scheduled_start_time: unsupported strftime directive %%%c", format[i])
		}
		sb.WriteString(layout)
	}
	return sb.String(), nil
}

// verifyRoundTrip checks that compileStrftime's result, applied to an
// arbitrary reference datetime, round-trips: format -> parse -> format
// yields the same text. A format string that can't round-trip (e.g.
// one with repeated/ambiguous directives) is rejected at compile time,
// per spec.
func verifyRoundTrip(layout string) error {
	ref := time.Date(2006, time.February, 3, 16, 5, 9, 0, time.UTC)
	text := ref.Format(layout)
	parsed, err := time.Parse(layout, text)
	if err != nil {
		return fmt.Errorf("format does not round-trip: parsing %q with layout %q: %w", text, layout, err)
	}
	if parsed.Format(layout) != text {
		return fmt.Errorf("format does not round-trip: %q -> %q -> %q", text, parsed.Format(layout), text)
	}
	return nil
}
