//go:build windows

package signalrouter

import "syscall"

var (
	kernel32                  = syscall.NewLazyDLL("kernel32.dll")
	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
)

// disableConsoleCtrlHandler clears the "ignore Ctrl+C" attribute that a
// process launched in the background inherits, so that a SIGINT under
// an "enable" policy also reaches such processes.
func disableConsoleCtrlHandler() {
	// SetConsoleCtrlHandler(NULL, FALSE) restores normal Ctrl+C
	// processing for this process, per the Win32 API.
	procSetConsoleCtrlHandler.Call(0, 0)
}
