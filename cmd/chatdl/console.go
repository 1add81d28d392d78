package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// consoleFormatter reformats zerolog's structured JSON lines into the
// spec's console format:
//
//	[LEVEL][YYYY-MM-DD HH:MM:SS][<base_context><video_id>] <message>
//
// zerolog has no built-in writer that produces this exact bracketed
// shape (its stock ConsoleWriter is a human-friendly but differently
// laid out formatter), so this is a small io.Writer wrapper that
// parses each already-built JSON line back out and re-renders it -
// the Go analogue of the original's
// logging.Formatter('[%(levelname)s][%(asctime)s][%(name)s] %(message)s').
type consoleFormatter struct {
	w           io.Writer
	baseContext string
}

// levelDisplay maps zerolog's level strings to the spec's level
// vocabulary (TRACE/DEBUG/INFO/WARNING/ERROR/CRITICAL); zerolog has no
// "critical" level, so both "fatal" and "panic" collapse to it.
var levelDisplay = map[string]string{
	"trace": "TRACE",
	"debug": "DEBUG",
	"info":  "INFO",
	"warn":  "WARNING",
	"error": "ERROR",
	"fatal": "CRITICAL",
	"panic": "CRITICAL",
}

// Write implements io.Writer. On any decode failure it falls back to
// writing the raw line verbatim, so a malformed or foreign line never
// silently vanishes.
func (c *consoleFormatter) Write(p []byte) (int, error) {
	var fields map[string]any
	if err := json.Unmarshal(p, &fields); err != nil {
		return c.w.Write(p)
	}

	level := "INFO"
	if l, ok := fields["level"].(string); ok {
		if disp, ok := levelDisplay[l]; ok {
			level = disp
		} else {
			level = strings.ToUpper(l)
		}
	}

	ts := time.Now()
	if t, ok := fields["time"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			ts = parsed
		}
	}

	bracket := c.baseContext
	if videoID, ok := fields["video_id"].(string); ok && videoID != "" {
		bracket += videoID
	}

	msg, _ := fields["message"].(string)

	line := fmt.Sprintf("[%s][%s][%s] %s\n", level, ts.Local().Format("2006-01-02 15:04:05"), bracket, msg)
	if _, err := c.w.Write([]byte(line)); err != nil {
		return 0, err
	}
	return len(p), nil
}
