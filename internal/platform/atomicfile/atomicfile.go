// Package atomicfile provides a single helper for the whole-buffer
// flush writes the output sink and cookie saver both need: either the
// file ends up fully written, or not written at all.
package atomicfile

import (
	"os"

	"github.com/google/renameio/v2"
)

// Write atomically replaces path's contents with data.
func Write(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}
