package sink

import "runtime"

// hostNewline is the "default = host-native" line terminator for the
// CSV sink and the operator's --newline option.
var hostNewline = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// bomBytes is the literal UTF-8 byte-order mark every sink format
// prepends, per spec.md §4.8.
var bomBytes = []byte{0xEF, 0xBB, 0xBF}
