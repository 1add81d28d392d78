//go:build !linux

package abort

import (
	"io/fs"
	"time"
)

// fileTimes falls back to reporting mtime for both fields on
// platforms where this package doesn't know the Sys() stat shape.
func fileTimes(info fs.FileInfo) (ctime, mtime time.Time) {
	mtime = info.ModTime()
	return mtime, mtime
}
