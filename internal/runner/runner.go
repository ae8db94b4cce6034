// Package runner builds the copy-tool option set for a job and invokes
// the tool as a synchronous subprocess. The tool's own log file is the
// detailed record of what happened; this layer only reports whether the
// invocation started and how it exited.
package runner

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/robosave/robosave/internal/types"
)

// CopyExecutor runs the external copy tool. Production shells out;
// tests substitute a recording fake.
type CopyExecutor interface {
	Execute(ctx context.Context, source, destination string, options []string) (exitCode int, err error)
}

// OSExecutor invokes the configured tool via exec.
type OSExecutor struct {
	Tool string
}

func (e *OSExecutor) Execute(ctx context.Context, source, destination string, options []string) (int, error) {
	args := append([]string{source, destination}, options...)
	cmd := exec.CommandContext(ctx, e.Tool, args...)
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	// The process never started: tool missing, permission denied.
	return -1, fmt.Errorf("start copy tool %s: %w", e.Tool, err)
}

// Options controls the retry knobs passed to the copy tool.
type Options struct {
	RetryCount       int
	RetryWaitSeconds int
}

// BuildOptionSet returns the flag set for a job. Both modes recurse
// including empty directories, copy all attributes/timestamps/security
// info, use restartable per-file copies, suppress per-file progress,
// and log to the job's log file. Mirror mode additionally deletes
// destination files absent at source.
func BuildOptionSet(job types.BackupJob, opts Options) []string {
	flags := make([]string, 0, 8)
	if job.Mode == types.CopyModeMirror {
		flags = append(flags, "/MIR")
	} else {
		flags = append(flags, "/E")
	}
	flags = append(flags,
		"/COPYALL",
		"/DCOPY:T",
		"/Z",
		"/NP",
		fmt.Sprintf("/R:%d", opts.RetryCount),
		fmt.Sprintf("/W:%d", opts.RetryWaitSeconds),
		"/LOG:"+job.LogPath,
	)
	return flags
}

// Runner executes backup jobs through a CopyExecutor.
type Runner struct {
	executor CopyExecutor
	opts     Options
}

// New creates a Runner.
func New(executor CopyExecutor, opts Options) *Runner {
	return &Runner{executor: executor, opts: opts}
}

// Execute runs the job to completion. A tool that could not start and a
// tool that exited non-zero are both reported as errors; exit codes are
// not interpreted beyond that.
func (r *Runner) Execute(ctx context.Context, job types.BackupJob) error {
	if !job.Valid() {
		return fmt.Errorf("invalid job: source and destination must be set and distinct")
	}

	options := BuildOptionSet(job, r.opts)
	exitCode, err := r.executor.Execute(ctx, job.Source, job.Destination, options)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		return fmt.Errorf("copy tool exited with code %d (see %s)", exitCode, job.LogPath)
	}
	return nil
}

// CommandLine renders the full invocation for display (dry runs, logs).
func (r *Runner) CommandLine(tool string, job types.BackupJob) string {
	line := tool + " " + job.Source + " " + job.Destination
	for _, flag := range BuildOptionSet(job, r.opts) {
		line += " " + flag
	}
	return line
}
