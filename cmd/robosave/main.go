package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/robosave/robosave/internal/cli"
	"github.com/robosave/robosave/internal/config"
	"github.com/robosave/robosave/internal/joblog"
	"github.com/robosave/robosave/internal/logging"
	"github.com/robosave/robosave/internal/orchestrator"
	"github.com/robosave/robosave/internal/resume"
	"github.com/robosave/robosave/internal/tui"
	"github.com/robosave/robosave/internal/types"
)

const version = "1.0.0"

const exitCodeInterrupted = 128 + int(syscall.SIGINT)

func main() {
	os.Exit(run())
}

func run() int {
	args := cli.Parse()

	if args.ShowHelp {
		cli.PrintUsage(os.Stdout, version)
		return types.ExitSuccess.Int()
	}
	if args.ShowVersion {
		fmt.Printf("robosave %s\n", version)
		return types.ExitSuccess.Int()
	}

	cfg, err := config.LoadConfig(args.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "robosave: %v\n", err)
		return types.ExitConfigError.Int()
	}
	if args.HasLogLevel {
		cfg.LogLevel = args.LogLevel
	}
	if args.ForceCLI {
		cfg.UseTUI = false
	}

	logger := logging.New(cfg.LogLevel, true)
	closeSessionLog := startSessionLog(logger, cfg.Paths.LogRoot)
	defer closeSessionLog()

	defer func() {
		if r := recover(); r != nil {
			logger.Critical("PANIC: %v", r)
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(types.ExitPanicError.Int())
		}
	}()

	// Handle SIGINT (Ctrl+C) and SIGTERM for a graceful shutdown; the
	// abort context also tears down any open TUI dialog.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Warning("Received signal %v, shutting down", sig)
		cancel()
	}()
	tui.SetAbortContext(ctx)

	if err := ensureInteractiveStdin(); err != nil {
		fmt.Fprintf(os.Stderr, "robosave: %v\n", err)
		return types.ExitGenericError.Int()
	}

	store, err := resume.Open(cfg.Paths)
	if err != nil {
		if errors.Is(err, resume.ErrLocked) {
			logger.Error("Another robosave session is already running")
			return types.ExitLockError.Int()
		}
		logger.Error("Cannot open resume state: %v", err)
		return types.ExitStateError.Int()
	}
	defer store.Close()

	var picker orchestrator.Picker
	var prompter orchestrator.Prompter
	if cfg.UseTUI {
		frontend := &tuiFrontend{}
		picker, prompter = frontend, frontend
	} else {
		frontend := newConsoleFrontend(bufio.NewReader(os.Stdin))
		picker, prompter = frontend, frontend
	}

	orch := orchestrator.New(cfg, logger, store, picker, prompter, args.DryRun)
	if err := orch.Run(ctx); err != nil {
		var fatal *joblog.FatalError
		switch {
		case errors.As(err, &fatal):
			logger.Fatal(types.ExitLogSetupError, "%v", fatal)
		case errors.Is(err, orchestrator.ErrWorkflowAborted):
			logger.Warning("Workflow aborted")
			return exitCodeInterrupted
		default:
			logger.Error("Backup workflow failed: %v", err)
			return types.ExitCopyError.Int()
		}
	}

	if logger.HasErrors() {
		return types.ExitGenericError.Int()
	}
	logger.Info("All done")
	return types.ExitSuccess.Int()
}
