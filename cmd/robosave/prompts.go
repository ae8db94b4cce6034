package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/robosave/robosave/internal/input"
)

func ensureInteractiveStdin() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("robosave requires an interactive terminal (stdin is not a TTY)")
	}
	return nil
}

func promptYesNo(ctx context.Context, reader *bufio.Reader, question string, defaultYes bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, input.ErrInputAborted
	}
	fmt.Print(question)
	resp, err := input.ReadLineWithContext(ctx, reader)
	if err != nil {
		return false, err
	}
	resp = strings.TrimSpace(strings.ToLower(resp))
	if resp == "" {
		return defaultYes, nil
	}
	// Any input other than an explicit yes is treated as "no".
	return resp == "y" || resp == "yes", nil
}

// promptChoice asks for a numeric choice between 1 and max; empty input
// selects def. Anything unparseable re-asks.
func promptChoice(ctx context.Context, reader *bufio.Reader, question string, max, def int) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, input.ErrInputAborted
		}
		fmt.Print(question)
		resp, err := input.ReadLineWithContext(ctx, reader)
		if err != nil {
			return 0, err
		}
		resp = strings.TrimSpace(resp)
		if resp == "" {
			return def, nil
		}
		var choice int
		if _, err := fmt.Sscanf(resp, "%d", &choice); err == nil && choice >= 1 && choice <= max {
			return choice, nil
		}
		fmt.Printf("Please enter a number between 1 and %d.\n", max)
	}
}

// promptPath asks for a directory path; empty input means no selection.
func promptPath(ctx context.Context, reader *bufio.Reader, question string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, input.ErrInputAborted
	}
	fmt.Print(question)
	resp, err := input.ReadLineWithContext(ctx, reader)
	if err != nil {
		return "", false, err
	}
	resp = strings.TrimSpace(resp)
	if resp == "" {
		return "", false, nil
	}
	return resp, true, nil
}
