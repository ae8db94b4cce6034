// Package resume persists a backup job's identity across process
// death. The store keeps at most one job's worth of state in two
// sibling files: a transient ".pending" record written before the copy
// starts and a durable ".resume" record the pending file is renamed to
// once the copy returns. Rename is the atomic primitive that flips the
// "this job survived" fact; no transactional log is needed.
//
// A surviving record in either location means the previous run never
// confirmed completion: transient-only implies the process died before
// promotion, durable implies the copy returned but cleanup never ran.
package resume

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/gofrs/flock"

	"github.com/robosave/robosave/internal/config"
	"github.com/robosave/robosave/internal/types"
)

// ErrLocked reports that another robosave session holds the state
// directory; the store is strictly single-writer.
var ErrLocked = errors.New("resume state directory is locked by another session")

// ErrNoRecord reports that no resume record exists.
var ErrNoRecord = errors.New("no resume record")

// Store manages the pending/durable record pair for one state directory.
type Store struct {
	pendingPath string
	durablePath string
	lock        *flock.Flock
}

// Open creates the state directory if needed and takes the advisory
// session lock. It returns ErrLocked when another process holds it.
func Open(paths config.Paths) (*Store, error) {
	if err := os.MkdirAll(paths.StateDir, 0o700); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	fl := flock.New(paths.LockPath())
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire state lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	return &Store{
		pendingPath: paths.PendingPath(),
		durablePath: paths.DurablePath(),
		lock:        fl,
	}, nil
}

// Close releases the session lock. The records themselves are left as
// they are; their existence is the durable state.
func (s *Store) Close() error {
	if s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}

// HasRecoverableJob reports whether a record from an unconfirmed prior
// run exists in either location.
func (s *Store) HasRecoverableJob() bool {
	return exists(s.durablePath) || exists(s.pendingPath)
}

// LoadRecoverableJob reads the surviving record, preferring the durable
// one. Any I/O or parse failure is returned as an error the caller
// should treat as "no usable resume state", never as fatal.
func (s *Store) LoadRecoverableJob() (types.BackupJob, error) {
	for _, path := range []string{s.durablePath, s.pendingPath} {
		if !exists(path) {
			continue
		}
		job, err := readRecord(path)
		if err != nil {
			return types.BackupJob{}, err
		}
		return job, nil
	}
	return types.BackupJob{}, ErrNoRecord
}

// BeginPendingJob writes the transient record for a job about to run,
// overwriting any prior transient record.
func (s *Store) BeginPendingJob(source, destination string, mode types.CopyMode) error {
	if source == "" || destination == "" {
		return errors.New("source and destination must be set")
	}
	if source == destination {
		return errors.New("source and destination must be distinct")
	}
	return writeRecord(s.pendingPath, types.BackupJob{
		Source:      source,
		Destination: destination,
		Mode:        mode,
	})
}

// PromoteToRecoverable atomically renames the transient record to the
// durable location. Calling it again without an intervening
// BeginPendingJob is a no-op as long as the durable record survived.
func (s *Store) PromoteToRecoverable() error {
	err := os.Rename(s.pendingPath, s.durablePath)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && exists(s.durablePath) {
		return nil
	}
	return fmt.Errorf("promote resume record: %w", err)
}

// DiscardPending removes the transient record without promotion. Used
// when the user cancels before the copy starts.
func (s *Store) DiscardPending() error {
	if err := os.Remove(s.pendingPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("discard pending record: %w", err)
	}
	return nil
}

// Clear removes every record once the orchestrator has fully processed
// a completed or resumed job.
func (s *Store) Clear() error {
	var firstErr error
	for _, path := range []string{s.durablePath, s.pendingPath} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			if firstErr == nil {
				firstErr = fmt.Errorf("clear resume record: %w", err)
			}
		}
	}
	return firstErr
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// The record is plain text: source, destination, mode token, one per
// line. Paths containing newlines are unsupported. Older two-line
// records load with the mode defaulting to a full, non-destructive copy.
func writeRecord(path string, job types.BackupJob) error {
	content := job.Source + "\n" + job.Destination + "\n" + job.Mode.String() + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write resume record: %w", err)
	}
	return nil
}

func readRecord(path string) (types.BackupJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.BackupJob{}, fmt.Errorf("read resume record: %w", err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return types.BackupJob{}, fmt.Errorf("malformed resume record %s: expected at least 2 lines, got %d", path, len(lines))
	}

	job := types.BackupJob{
		Source:      strings.TrimSpace(lines[0]),
		Destination: strings.TrimSpace(lines[1]),
		Mode:        types.CopyModeFull,
	}
	if len(lines) >= 3 {
		job.Mode = types.ParseCopyMode(strings.TrimSpace(lines[2]))
	}
	if !job.Valid() {
		return types.BackupJob{}, fmt.Errorf("malformed resume record %s: empty or identical paths", path)
	}
	return job, nil
}
