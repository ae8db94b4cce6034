// Package sizereport computes the total size of a directory tree for
// the pre-flight summary shown before a copy is confirmed.
package sizereport

import (
	"context"
	"path/filepath"
	"time"

	"github.com/robosave/robosave/internal/safefs"
	"github.com/robosave/robosave/pkg/utils"
)

// Unknown is returned whenever the tree cannot be fully enumerated.
// The size is a best-effort diagnostic, not a correctness-critical
// value, so failures never propagate.
const Unknown = "Unknown size"

// Reporter walks a directory tree and reports its total size.
type Reporter struct {
	fsTimeout time.Duration
}

// New creates a Reporter. fsTimeout bounds each stat/readdir call;
// zero disables the guard.
func New(fsTimeout time.Duration) *Reporter {
	return &Reporter{fsTimeout: fsTimeout}
}

// ComputeSize returns the formatted total size of every regular file
// under path ("3.42 GB"), or Unknown on any enumeration failure.
// The traversal is read-only and does not follow symlinks.
func (r *Reporter) ComputeSize(ctx context.Context, path string) string {
	info, err := safefs.Stat(ctx, path, r.fsTimeout)
	if err != nil {
		return Unknown
	}
	if !info.IsDir() {
		return utils.FormatSize(info.Size())
	}

	total, err := r.scanDir(ctx, path)
	if err != nil {
		return Unknown
	}
	return utils.FormatSize(total)
}

func (r *Reporter) scanDir(ctx context.Context, dir string) (int64, error) {
	entries, err := safefs.ReadDir(ctx, dir, r.fsTimeout)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		name := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			sub, err := r.scanDir(ctx, name)
			if err != nil {
				return 0, err
			}
			total += sub
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return 0, err
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
	}
	return total, nil
}
