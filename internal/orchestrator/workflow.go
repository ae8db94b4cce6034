// Package orchestrator sequences one backup cycle at a time: resume
// offer, folder selection, pre-flight summary, copy execution, and the
// resume-record transitions around it.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robosave/robosave/internal/input"
	"github.com/robosave/robosave/internal/types"
)

// ErrWorkflowAborted signals that the user interrupted the interactive
// workflow (Ctrl+C, closed stdin).
var ErrWorkflowAborted = errors.New("backup workflow aborted by user")

var titleCaser = cases.Title(language.English)

// Orchestrator drives the interactive backup loop. It owns no state of
// its own beyond the current cycle's job.
type Orchestrator struct {
	deps Deps
}

func defaultPathCheck(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Run loops backup cycles until the user declines to continue. It
// returns nil on a normal exit, ErrWorkflowAborted on interrupt, and a
// *joblog.FatalError when the log root cannot be created.
func (o *Orchestrator) Run(ctx context.Context) error {
	for {
		again, err := o.runCycle(ctx)
		if err != nil {
			if input.IsAborted(err) {
				return ErrWorkflowAborted
			}
			return err
		}
		if !again {
			return nil
		}
	}
}

// runCycle processes a single job. It reports whether the loop should
// run another cycle.
func (o *Orchestrator) runCycle(ctx context.Context) (bool, error) {
	log := o.deps.Logger

	job, resumed, err := o.acquireJob(ctx)
	if err != nil {
		return false, err
	}
	if job == nil {
		// Nothing selected; ask whether to try again.
		return o.deps.Prompter.ConfirmContinue(ctx)
	}

	// Log allocation failure is the one fatal setup error: running a
	// destructive copy without a durable log is disallowed. It happens
	// before the pending record is committed, so a failed setup leaves
	// no resume state behind.
	logPath, err := o.deps.Logs.Allocate(job.Source)
	if err != nil {
		return false, err
	}
	job.LogPath = logPath
	log.Info("Copy log: %s", logPath)

	if !resumed {
		if err := o.deps.Store.BeginPendingJob(job.Source, job.Destination, job.Mode); err != nil {
			// Resumability is a convenience, not a correctness guarantee.
			log.Warning("Could not record pending job: %v", err)
		}
	}

	log.Step("Scanning source size: %s", job.Source)
	sizeText := o.deps.Sizer.ComputeSize(ctx, job.Source)

	confirmed, err := o.deps.Prompter.ConfirmJob(ctx, FormatJobSummary(*job, sizeText))
	if err != nil {
		return false, err
	}
	if !confirmed {
		log.Info("Backup cancelled before execution")
		if !resumed {
			if err := o.deps.Store.DiscardPending(); err != nil {
				log.Warning("Could not discard pending record: %v", err)
			}
		}
		return o.deps.Prompter.ConfirmContinue(ctx)
	}

	if o.deps.DryRun {
		log.Info("Dry run, would execute: %s", o.deps.Runner.CommandLine(o.deps.CopyTool, *job))
		if !resumed {
			if err := o.deps.Store.DiscardPending(); err != nil {
				log.Warning("Could not discard pending record: %v", err)
			}
		}
		return o.deps.Prompter.ConfirmContinue(ctx)
	}

	log.Step("Running %s backup: %s -> %s", job.Mode, job.Source, job.Destination)
	execErr := o.deps.Runner.Execute(ctx, *job)

	// Promote immediately after the copy returns: at this point the
	// outcome is ambiguous at this layer, and the record must survive
	// until the cycle is confirmed finished.
	if err := o.deps.Store.PromoteToRecoverable(); err != nil {
		log.Warning("Could not promote resume record: %v", err)
	}

	if execErr != nil {
		log.Error("Backup failed: %v", execErr)
		log.Info("The job can be resumed on the next run; details in %s", job.LogPath)
	} else {
		log.Info("Backup completed successfully")
		if err := o.deps.Store.Clear(); err != nil {
			log.Warning("Could not clear resume record: %v", err)
		}
	}

	return o.deps.Prompter.ConfirmContinue(ctx)
}

// acquireJob obtains this cycle's job, either from the resume store or
// from fresh folder selection. A nil job with nil error means the user
// made no selection.
func (o *Orchestrator) acquireJob(ctx context.Context) (*types.BackupJob, bool, error) {
	log := o.deps.Logger

	if o.deps.Store.HasRecoverableJob() {
		job, ok, err := o.offerResume(ctx)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return job, true, nil
		}
	}

	source, ok, err := o.deps.Picker.Pick(ctx, "Select the folder to back up")
	if err != nil {
		return nil, false, err
	}
	if !ok {
		log.Info("No source folder selected")
		return nil, false, nil
	}

	destination, ok, err := o.deps.Picker.Pick(ctx, "Select the destination folder")
	if err != nil {
		return nil, false, err
	}
	if !ok {
		log.Info("No destination folder selected")
		return nil, false, nil
	}

	if source == destination {
		log.Warning("Source and destination must be distinct")
		return nil, false, nil
	}

	mode, err := o.deps.Prompter.SelectMode(ctx)
	if err != nil {
		return nil, false, err
	}

	return &types.BackupJob{Source: source, Destination: destination, Mode: mode}, false, nil
}

// offerResume loads the surviving record and asks the user whether to
// pick the interrupted job back up. Unusable state is cleared with a
// warning and never stops the workflow.
func (o *Orchestrator) offerResume(ctx context.Context) (*types.BackupJob, bool, error) {
	log := o.deps.Logger

	job, err := o.deps.Store.LoadRecoverableJob()
	if err != nil {
		log.Warning("Ignoring unusable resume state: %v", err)
		if err := o.deps.Store.Clear(); err != nil {
			log.Warning("Could not clear resume state: %v", err)
		}
		return nil, false, nil
	}

	if !o.deps.PathCheck(job.Source) || !o.deps.PathCheck(job.Destination) {
		log.Warning("Interrupted job is no longer resumable (source or destination missing)")
		if err := o.deps.Store.Clear(); err != nil {
			log.Warning("Could not clear resume state: %v", err)
		}
		return nil, false, nil
	}

	accepted, err := o.deps.Prompter.ConfirmResume(ctx, job)
	if err != nil {
		return nil, false, err
	}
	if !accepted {
		log.Info("Discarding interrupted job")
		if err := o.deps.Store.Clear(); err != nil {
			log.Warning("Could not clear resume state: %v", err)
		}
		return nil, false, nil
	}

	log.Info("Resuming interrupted %s backup: %s -> %s", job.Mode, job.Source, job.Destination)
	return &job, true, nil
}

// FormatJobSummary renders the pre-flight confirmation text shown to
// the user before the copy starts.
func FormatJobSummary(job types.BackupJob, sizeText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Source:      %s\n", job.Source)
	fmt.Fprintf(&b, "Destination: %s\n", job.Destination)
	fmt.Fprintf(&b, "Mode:        %s\n", titleCaser.String(job.Mode.String()))
	fmt.Fprintf(&b, "Total size:  %s", sizeText)
	if job.Mode.Destructive() {
		b.WriteString("\n\nMirror mode DELETES destination files that are absent at source.")
	}
	return b.String()
}
