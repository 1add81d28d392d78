package sink

import (
	"encoding/json"
	"fmt"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
	"github.com/lbmaian/chatdl/internal/platform/atomicfile"
)

// flushJSON dumps the whole buffer as a JSON array with sorted keys.
// Each record is round-tripped through map[string]any first: Go's
// encoding/json marshals map[string]T keys in sorted order, which is
// the cheapest way to get "keys sorted" without hand-rolling a
// field-order-preserving encoder.
func (s *Sink) flushJSON() error {
	rows := make([]map[string]any, 0, len(s.buffer))
	for _, r := range s.buffer {
		m, err := recordToSortedMap(r)
		if err != nil {
			return err
		}
		rows = append(rows, m)
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("sink: marshaling json output: %w", err)
	}

	return atomicfile.Write(s.path, prependBOM(data), 0o644)
}

func recordToSortedMap(r *model.Record) (map[string]any, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("sink: marshaling record: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("sink: unmarshaling record: %w", err)
	}
	return m, nil
}

// prependBOM prefixes data with the literal UTF-8 byte-order mark so
// consumers that sniff encoding from a leading BOM (spreadsheets, some
// editors) treat the file as UTF-8 unambiguously - the same bomBytes
// constant the text sink writes directly in Open.
func prependBOM(data []byte) []byte {
	out := make([]byte, 0, len(bomBytes)+len(data))
	out = append(out, bomBytes...)
	return append(out, data...)
}
