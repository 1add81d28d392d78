package main

import (
	"flag"
	"fmt"
	"strings"
)

// stringList collects every occurrence of a repeatable flag
// (--abort_condition, --log_file), in the order given, the Go
// analogue of argparse's action='append'.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Options is the fully parsed, validated CLI surface from spec.md §6.
type Options struct {
	URL string

	StartTime string
	EndTime   string

	MessageType string
	ChatType    string

	Output      string
	Cookies     string
	SaveCookies string
	Profile     string

	AbortConditions []string

	LogFiles       []string
	LogLevel       string
	LogBaseContext string
	Newline        string
	HideOutput     bool
}

var validMessageTypes = map[string]bool{"messages": true, "superchat": true, "all": true}
var validChatTypes = map[string]bool{"live": true, "top": true}
var validLogLevels = map[string]bool{
	"TRACE": true, "DEBUG": true, "INFO": true, "WARNING": true, "ERROR": true, "CRITICAL": true,
}

// normalizeArgs rewrites single-dash long-form args ("-abort_condition")
// into double-dash form ("--abort_condition") before flag parsing, per
// spec.md §6 and the original's equivalent os.Args preprocessing step
// (`'-' + arg if len(arg) >= 3 and arg[0] == '-' and arg[1] != '-'`).
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if len(a) >= 3 && a[0] == '-' && a[1] != '-' {
			out[i] = "-" + a
		} else {
			out[i] = a
		}
	}
	return out
}

// parseOptions parses and validates args (excluding argv[0]) into an
// Options, applying the CLI contract of spec.md §6.
func parseOptions(args []string) (*Options, error) {
	fs := flag.NewFlagSet("chatdl", flag.ContinueOnError)

	var opts Options
	var abortConds, logFiles stringList

	fs.StringVar(&opts.StartTime, "start_time", "0", "start time in seconds or hh:mm:ss")
	fs.StringVar(&opts.StartTime, "from", "0", "alias of --start_time")
	fs.StringVar(&opts.EndTime, "end_time", "", "end time in seconds or hh:mm:ss")
	fs.StringVar(&opts.EndTime, "to", "", "alias of --end_time")
	fs.StringVar(&opts.MessageType, "message_type", "messages", "one of messages, superchat, all")
	fs.StringVar(&opts.ChatType, "chat_type", "live", "one of live, top")
	fs.StringVar(&opts.Output, "output", "", "output file path; extension selects json/csv/text format")
	fs.StringVar(&opts.Cookies, "cookies", "", "netscape-format cookie file to load")
	fs.StringVar(&opts.SaveCookies, "save_cookies", "", "netscape-format cookie file to save to on exit")
	fs.StringVar(&opts.Profile, "profile", "", "YAML file seeding default --cookies/--save_cookies/--abort_condition values")
	fs.Var(&abortConds, "abort_condition", "abort-condition DNF group; repeatable")
	fs.Var(&logFiles, "log_file", "log sink path, :console:, or :none:; repeatable")
	fs.StringVar(&opts.LogLevel, "log_level", "WARNING", "one of TRACE, DEBUG, INFO, WARNING, ERROR, CRITICAL")
	fs.StringVar(&opts.LogBaseContext, "log_base_context", "", "prefix prepended to the log line's video-id bracket")
	fs.StringVar(&opts.Newline, "newline", "", "backslash-escaped line terminator; empty means host-native")
	fs.BoolVar(&opts.HideOutput, "hide_output", false, "deprecated alias for --log_file :none:")

	if err := fs.Parse(normalizeArgs(args)); err != nil {
		return nil, err
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return nil, fmt.Errorf("expected exactly one positional url argument, got %d", len(rest))
	}
	opts.URL = rest[0]

	opts.MessageType = strings.ToLower(opts.MessageType)
	if !validMessageTypes[opts.MessageType] {
		return nil, fmt.Errorf("--message_type: must be one of messages, superchat, all, got %q", opts.MessageType)
	}
	opts.ChatType = strings.ToLower(opts.ChatType)
	if !validChatTypes[opts.ChatType] {
		return nil, fmt.Errorf("--chat_type: must be one of live, top, got %q", opts.ChatType)
	}
	opts.LogLevel = strings.ToUpper(opts.LogLevel)
	if !validLogLevels[opts.LogLevel] {
		return nil, fmt.Errorf("--log_level: must be one of TRACE, DEBUG, INFO, WARNING, ERROR, CRITICAL, got %q", opts.LogLevel)
	}

	opts.AbortConditions = []string(abortConds)
	opts.LogFiles = []string(logFiles)
	opts.Newline = unescapeNewline(opts.Newline)

	if opts.Profile != "" {
		profile, err := loadProfile(opts.Profile)
		if err != nil {
			return nil, err
		}
		applyProfile(&opts, profile)
	}

	return &opts, nil
}

// unescapeNewline expands the backslash escapes an operator can use in
// --newline (e.g. "\r\n", "\t") since a shell can't easily pass a
// literal control character on the command line.
func unescapeNewline(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// translateLogLevel maps the spec's log-level vocabulary to the
// zerolog level strings internal/log.Configure understands; CRITICAL
// has no direct zerolog equivalent, so it maps to zerolog's highest
// ordinary level, "panic" (nothing above it logs through a lower
// global level).
func translateLogLevel(level string) string {
	switch level {
	case "TRACE":
		return "trace"
	case "DEBUG":
		return "debug"
	case "INFO":
		return "info"
	case "WARNING":
		return "warn"
	case "ERROR":
		return "error"
	case "CRITICAL":
		return "panic"
	default:
		return "info"
	}
}
