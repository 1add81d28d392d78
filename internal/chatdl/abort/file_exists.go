package abort

import (
	"fmt"
	"os"
	"time"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
)

// fileExists fires when its configured path exists, checked fresh on
// every Eval call (the path may appear or disappear mid-run).
type fileExists struct {
	path string
}

func newFileExists(rest string) (Predicate, error) {
	if rest == "" {
		return nil, fmt.Errorf("file_exists: missing path")
	}
	return &fileExists{path: rest}, nil
}

func (p *fileExists) Name() string { return "file_exists" }

func (p *fileExists) Eval(_ *model.AbortState, _ time.Time) (string, bool) {
	info, err := os.Stat(p.path)
	if err != nil {
		return "", false
	}
	ctime, mtime := fileTimes(info)
	return fmt.Sprintf("%s exists (ctime=%s, mtime=%s)",
		p.path, ctime.Format(time.RFC3339), mtime.Format(time.RFC3339)), true
}
