package main

import (
	"fmt"
	"io"
	"os"
)

// buildLogWriter assembles the fan-out writer --log_file describes:
// zero or more of a bracketed-console sink (":console:"), a discarded
// sink (":none:"), or a plain file path, composed with io.MultiWriter
// - the idiomatic Go equivalent of the original's manual _MultiFile
// wrapper around N redirected sys.stdout targets. --hide_output is a
// deprecated alias for a single ":none:" target. The returned close
// func closes every opened file; call it once, after the run.
func buildLogWriter(opts *Options) (io.Writer, func(), error) {
	targets := opts.LogFiles
	if opts.HideOutput {
		targets = []string{":none:"}
	} else if len(targets) == 0 {
		targets = []string{":console:"}
	}

	var writers []io.Writer
	var files []*os.File
	for _, t := range targets {
		switch t {
		case ":none:":
			writers = append(writers, io.Discard)
		case ":console:":
			writers = append(writers, &consoleFormatter{w: os.Stdout, baseContext: opts.LogBaseContext})
		default:
			f, err := os.Create(t)
			if err != nil {
				for _, opened := range files {
					opened.Close()
				}
				return nil, nil, fmt.Errorf("opening log file %s: %w", t, err)
			}
			files = append(files, f)
			writers = append(writers, &consoleFormatter{w: f, baseContext: opts.LogBaseContext})
		}
	}

	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	if len(writers) == 1 {
		return writers[0], closeAll, nil
	}
	return io.MultiWriter(writers...), closeAll, nil
}
