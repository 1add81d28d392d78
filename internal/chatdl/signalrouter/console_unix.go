//go:build !windows

package signalrouter

// disableConsoleCtrlHandler is a no-op on unix-family hosts: there is
// no separate low-level console handler layered on top of ordinary
// signal delivery the way Windows has one.
func disableConsoleCtrlHandler() {}
