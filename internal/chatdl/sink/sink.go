// Package sink implements C8: accumulating canonical chat records and
// flushing them to JSON, CSV, or line-delimited text on termination,
// per spec.md §4.8. Ownership of the buffer transfers from the engine
// to the Sink at construction; the engine only ever calls Append.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
)

// Format is the output shape selected by the output file's extension.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// FormatFor selects a Format from an output path's extension; any
// extension other than .json/.csv falls back to the plain-text
// format, per spec.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	default:
		return FormatText
	}
}

// Sink accumulates records for a single engine run and flushes them
// in the format its output path implies. For the text format, each
// non-ticker record is additionally appended to the file as it
// arrives (streaming), matching the original's truncate-then-append
// behavior; JSON and CSV are whole-buffer dumps written on Close.
type Sink struct {
	path    string
	format  Format
	newline string

	mu       sync.Mutex
	buffer   []*model.Record
	textFile *os.File
}

// Open creates a Sink for path. For the text format this truncates
// (or creates) the file immediately and writes the UTF-8 BOM, so a
// run that's aborted mid-way still leaves a valid, partially-written
// file; JSON/CSV formats only materialize their file in Close.
func Open(path string, newline string) (*Sink, error) {
	if newline == "" {
		newline = hostNewline
	}
	s := &Sink{path: path, format: FormatFor(path), newline: newline}

	if s.format == FormatText {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("sink: creating %s: %w", path, err)
		}
		if _, err := f.Write(bomBytes); err != nil {
			f.Close()
			return nil, fmt.Errorf("sink: writing BOM to %s: %w", path, err)
		}
		s.textFile = f
	}
	return s, nil
}

// Append adds r to the buffer and, for the text format, prints it
// immediately unless it's a ticker-mirror record (invariant (iii):
// ticker records stay in the buffer but are suppressed from output to
// avoid double-displaying the same superchat).
func (s *Sink) Append(r *model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = append(s.buffer, r)

	if s.format == FormatText && !r.IsTicker() {
		line := FormatMessage(r) + s.newline
		if _, err := s.textFile.WriteString(line); err != nil {
			return fmt.Errorf("sink: appending to %s: %w", s.path, err)
		}
	}
	return nil
}

// Buffer returns a snapshot copy of every record accumulated so far,
// ticker-mirror records included.
func (s *Sink) Buffer() []*model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Record, len(s.buffer))
	copy(out, s.buffer)
	return out
}

// Close finalizes the sink: for JSON/CSV this performs the
// whole-buffer flush; for text it just closes the already-written
// file. Safe to call once per Sink.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case FormatJSON:
		return s.flushJSON()
	case FormatCSV:
		return s.flushCSV()
	case FormatText:
		if s.textFile != nil {
			return s.textFile.Close()
		}
	}
	return nil
}
