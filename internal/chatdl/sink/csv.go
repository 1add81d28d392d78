package sink

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/lbmaian/chatdl/internal/platform/atomicfile"
)

// flushCSV dumps the whole buffer as CSV: the header row is the
// sorted union of keys across every record (records don't all carry
// the same fields), and the configured newline replaces the writer's
// default line terminator.
func (s *Sink) flushCSV() error {
	rows := make([]map[string]any, 0, len(s.buffer))
	keySet := make(map[string]bool)
	for _, r := range s.buffer {
		m, err := recordToSortedMap(r)
		if err != nil {
			return err
		}
		rows = append(rows, m)
		for k := range m {
			keySet[k] = true
		}
	}

	header := make([]string, 0, len(keySet))
	for k := range keySet {
		header = append(header, k)
	}
	sort.Strings(header)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = false // we apply the operator's newline ourselves below

	if err := w.Write(header); err != nil {
		return fmt.Errorf("sink: writing csv header: %w", err)
	}
	for _, m := range rows {
		record := make([]string, len(header))
		for i, k := range header {
			record[i] = cellString(m[k])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("sink: writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("sink: flushing csv writer: %w", err)
	}

	out := buf.String()
	if s.newline != "\n" {
		out = strings.ReplaceAll(out, "\n", s.newline)
	}

	return atomicfile.Write(s.path, prependBOM([]byte(out)), 0o644)
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return formatFloat(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}

func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
