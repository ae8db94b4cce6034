package main

import (
	"context"
	"os"

	"github.com/robosave/robosave/internal/orchestrator"
	"github.com/robosave/robosave/internal/tui/components"
	"github.com/robosave/robosave/internal/types"
)

// tuiFrontend implements the picker and prompter over tview dialogs.
type tuiFrontend struct{}

func (f *tuiFrontend) Pick(ctx context.Context, description string) (string, bool, error) {
	start, err := os.UserHomeDir()
	if err != nil {
		start = "/"
	}
	return components.PickDirectory(ctx, description, start)
}

func (f *tuiFrontend) ConfirmResume(ctx context.Context, job types.BackupJob) (bool, error) {
	summary := orchestrator.FormatJobSummary(job, "interrupted")
	return components.RunConfirm(ctx, "Resume interrupted backup?", summary)
}

func (f *tuiFrontend) SelectMode(ctx context.Context) (types.CopyMode, error) {
	choice, err := components.RunSelect(ctx, "Backup mode",
		"Full copy keeps everything at destination.\nIncremental mirror also deletes files absent at source.",
		[]string{"Full copy", "Incremental mirror"})
	if err != nil {
		return types.CopyModeFull, err
	}
	if choice == 1 {
		return types.CopyModeMirror, nil
	}
	return types.CopyModeFull, nil
}

func (f *tuiFrontend) ConfirmJob(ctx context.Context, summary string) (bool, error) {
	return components.RunConfirm(ctx, "Start backup?", summary)
}

func (f *tuiFrontend) ConfirmContinue(ctx context.Context) (bool, error) {
	return components.RunConfirm(ctx, "Continue?", "Run another backup?")
}
