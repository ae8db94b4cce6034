package orchestrator

import (
	"context"
	"time"

	"github.com/robosave/robosave/internal/config"
	"github.com/robosave/robosave/internal/joblog"
	"github.com/robosave/robosave/internal/logging"
	"github.com/robosave/robosave/internal/runner"
	"github.com/robosave/robosave/internal/sizereport"
	"github.com/robosave/robosave/internal/types"
)

// Picker selects a directory interactively, returning ok=false when the
// user dismisses the dialog without choosing.
type Picker interface {
	Pick(ctx context.Context, description string) (path string, ok bool, err error)
}

// Prompter encapsulates the interactive questions of one loop cycle.
type Prompter interface {
	ConfirmResume(ctx context.Context, job types.BackupJob) (bool, error)
	SelectMode(ctx context.Context) (types.CopyMode, error)
	ConfirmJob(ctx context.Context, summary string) (bool, error)
	ConfirmContinue(ctx context.Context) (bool, error)
}

// StateStore is the resume-record surface the workflow drives.
type StateStore interface {
	HasRecoverableJob() bool
	LoadRecoverableJob() (types.BackupJob, error)
	BeginPendingJob(source, destination string, mode types.CopyMode) error
	PromoteToRecoverable() error
	DiscardPending() error
	Clear() error
}

// JobRunner executes a prepared job.
type JobRunner interface {
	Execute(ctx context.Context, job types.BackupJob) error
	CommandLine(tool string, job types.BackupJob) string
}

// SizeReporter produces the pre-flight size string.
type SizeReporter interface {
	ComputeSize(ctx context.Context, path string) string
}

// LogAllocator derives the per-job log path.
type LogAllocator interface {
	Allocate(sourcePath string) (string, error)
}

// PathChecker verifies that a resumable job's directories still exist.
type PathChecker func(path string) bool

// Deps groups the orchestrator's collaborators. Zero fields are filled
// with production defaults by NewWithDeps.
type Deps struct {
	Logger    *logging.Logger
	Store     StateStore
	Runner    JobRunner
	Sizer     SizeReporter
	Logs      LogAllocator
	Picker    Picker
	Prompter  Prompter
	PathCheck PathChecker
	CopyTool  string
	DryRun    bool
}

// New builds a production orchestrator from configuration. The store,
// picker and prompter have no sensible default and must be supplied.
func New(cfg *config.Config, logger *logging.Logger, store StateStore, picker Picker, prompter Prompter, dryRun bool) *Orchestrator {
	executor := &runner.OSExecutor{Tool: cfg.CopyTool}
	opts := runner.Options{
		RetryCount:       cfg.RetryCount,
		RetryWaitSeconds: cfg.RetryWaitSeconds,
	}
	return NewWithDeps(Deps{
		Logger:   logger,
		Store:    store,
		Runner:   runner.New(executor, opts),
		Sizer:    sizereport.New(time.Duration(cfg.FSTimeoutSeconds) * time.Second),
		Logs:     joblog.New(cfg.Paths.LogRoot),
		Picker:   picker,
		Prompter: prompter,
		CopyTool: cfg.CopyTool,
		DryRun:   dryRun,
	})
}

// NewWithDeps builds an orchestrator using custom dependencies while
// preserving defaults for the ones left nil.
func NewWithDeps(deps Deps) *Orchestrator {
	if deps.Logger == nil {
		deps.Logger = logging.New(types.LogLevelInfo, false)
	}
	if deps.Sizer == nil {
		deps.Sizer = sizereport.New(0)
	}
	if deps.PathCheck == nil {
		deps.PathCheck = defaultPathCheck
	}
	if deps.CopyTool == "" {
		deps.CopyTool = "robocopy"
	}
	return &Orchestrator{deps: deps}
}
