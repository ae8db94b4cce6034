// Package joblog derives per-job log file paths under the fixed log
// root. The copy tool writes its detailed log there; losing that log
// for a destructive operation is not acceptable, so a log root that
// cannot be created is a fatal setup error.
package joblog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// timestampLayout gives second resolution; two jobs started within the
// same second for the same source collide. Documented limitation.
const timestampLayout = "2006-01-02_15-04-05"

// FatalError reports that the log root could not be created. Callers
// must treat it as process-terminating: no copy may run without a
// durable log location.
type FatalError struct {
	Path string
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("cannot create log directory %s: %v", e.Path, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Allocator derives unique, timestamped log paths for backup jobs.
type Allocator struct {
	logRoot string
	now     func() time.Time
}

// New creates an Allocator rooted at logRoot.
func New(logRoot string) *Allocator {
	return &Allocator{logRoot: logRoot, now: time.Now}
}

// SetNowFunc overrides the time source (useful for tests). A nil fn
// restores time.Now.
func (a *Allocator) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		a.now = time.Now
		return
	}
	a.now = fn
}

// Allocate ensures the log root exists and returns the log path for a
// job reading from sourcePath: Copy-<leaf>-<timestamp>.log.
func (a *Allocator) Allocate(sourcePath string) (string, error) {
	if err := os.MkdirAll(a.logRoot, 0o755); err != nil {
		return "", &FatalError{Path: a.logRoot, Err: err}
	}

	name := fmt.Sprintf("Copy-%s-%s.log", leafName(sourcePath), a.now().Format(timestampLayout))
	return filepath.Join(a.logRoot, name), nil
}

// leafName returns the final path segment of a directory path, with
// characters that are awkward in file names replaced.
func leafName(path string) string {
	trimmed := strings.TrimRight(path, "/\\")
	if trimmed == "" {
		return "root"
	}
	leaf := filepath.Base(trimmed)
	// Windows-style inputs are not split by filepath.Base on other
	// platforms; take the last segment by hand.
	if idx := strings.LastIndexAny(leaf, "/\\:"); idx >= 0 {
		leaf = leaf[idx+1:]
	}
	if leaf == "" || leaf == "." {
		return "root"
	}
	return leaf
}
