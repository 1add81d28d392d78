//go:build linux

package abort

import (
	"io/fs"
	"syscall"
	"time"
)

// fileTimes extracts ctime/mtime from a unix stat_t. fs.FileInfo only
// portably exposes mtime; ctime requires reaching into the platform
// Sys() value, which is only meaningful on unix-family systems.
func fileTimes(info fs.FileInfo) (ctime, mtime time.Time) {
	mtime = info.ModTime()
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		ctime = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	} else {
		ctime = mtime
	}
	return ctime, mtime
}
