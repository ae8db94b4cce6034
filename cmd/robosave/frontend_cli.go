package main

import (
	"bufio"
	"context"
	"fmt"

	"github.com/robosave/robosave/internal/types"
)

// consoleFrontend implements the picker and prompter over plain stdin
// prompts (--cli mode, or when no TUI is wanted in the config).
type consoleFrontend struct {
	reader *bufio.Reader
}

func newConsoleFrontend(reader *bufio.Reader) *consoleFrontend {
	return &consoleFrontend{reader: reader}
}

func (f *consoleFrontend) Pick(ctx context.Context, description string) (string, bool, error) {
	return promptPath(ctx, f.reader, description+" (empty to skip): ")
}

func (f *consoleFrontend) ConfirmResume(ctx context.Context, job types.BackupJob) (bool, error) {
	fmt.Println()
	fmt.Println("An interrupted backup was found:")
	fmt.Printf("  Source:      %s\n", job.Source)
	fmt.Printf("  Destination: %s\n", job.Destination)
	fmt.Printf("  Mode:        %s\n", job.Mode)
	return promptYesNo(ctx, f.reader, "Resume this backup? [Y/n]: ", true)
}

func (f *consoleFrontend) SelectMode(ctx context.Context) (types.CopyMode, error) {
	fmt.Println()
	fmt.Println("Backup mode:")
	fmt.Println("  1) Full copy (nothing is deleted at destination)")
	fmt.Println("  2) Incremental mirror (destination becomes an exact mirror, including deletions)")
	choice, err := promptChoice(ctx, f.reader, "Select mode [1/2, default 1]: ", 2, 1)
	if err != nil {
		return types.CopyModeFull, err
	}
	if choice == 2 {
		return types.CopyModeMirror, nil
	}
	return types.CopyModeFull, nil
}

func (f *consoleFrontend) ConfirmJob(ctx context.Context, summary string) (bool, error) {
	fmt.Println()
	fmt.Println(summary)
	fmt.Println()
	return promptYesNo(ctx, f.reader, "Start the backup? [y/N]: ", false)
}

func (f *consoleFrontend) ConfirmContinue(ctx context.Context) (bool, error) {
	fmt.Println()
	return promptYesNo(ctx, f.reader, "Run another backup? [y/N]: ", false)
}
