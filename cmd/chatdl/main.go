// Command chatdl retrieves a chat-message stream from a past or live
// YT/TW video broadcast and emits it to the operator as a normalized,
// platform-independent record stream, per spec.md §1.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lbmaian/chatdl/internal/version"
)

func main() {
	os.Exit(mainRun(os.Args[1:]))
}

// mainRun is main's testable body: it returns the process exit code
// instead of calling os.Exit directly, per spec.md §6's exit-code
// contract (0 on normal completion, abort conditions, or interrupt;
// non-zero on an uncaught error).
func mainRun(args []string) int {
	if len(args) == 1 && (args[0] == "--version" || args[0] == "-version") {
		fmt.Printf("chatdl %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
		return 0
	}

	opts, err := parseOptions(args)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, "[Invalid Arguments]", err)
		return 2
	}

	// Signal handling is owned entirely by internal/chatdl/signalrouter
	// (C5), installed inside run(): the CLI layer doesn't pre-empt it
	// with its own signal.NotifyContext, since spec.md §4.5's
	// default/enable/disable policy table - not "first SIGINT wins" -
	// decides what a given signal does.
	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintln(os.Stderr, describeErr(err))
		return 1
	}
	return 0
}
