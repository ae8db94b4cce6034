// Package cli parses command-line arguments.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/robosave/robosave/internal/types"
)

// Args holds the parsed command-line arguments
type Args struct {
	ConfigPath  string
	LogLevel    types.LogLevel
	HasLogLevel bool
	DryRun      bool
	ForceCLI    bool
	ShowVersion bool
	ShowHelp    bool
}

// Parse parses command-line arguments and returns Args struct
func Parse() *Args {
	args := &Args{}

	flag.StringVar(&args.ConfigPath, "config", "",
		"Path to configuration file (KEY=VALUE env format)")
	flag.StringVar(&args.ConfigPath, "c", "",
		"Path to configuration file (shorthand)")

	var logLevelStr string
	flag.StringVar(&logLevelStr, "log-level", "",
		"Log level (debug|info|warning|error|critical)")
	flag.StringVar(&logLevelStr, "l", "",
		"Log level (shorthand)")

	flag.BoolVar(&args.DryRun, "dry-run", false,
		"Show the copy command without executing it")
	flag.BoolVar(&args.DryRun, "n", false,
		"Show the copy command without executing it (shorthand)")

	flag.BoolVar(&args.ForceCLI, "cli", false,
		"Use plain console prompts instead of the TUI dialogs")

	flag.BoolVar(&args.ShowVersion, "version", false,
		"Show version information")
	flag.BoolVar(&args.ShowVersion, "v", false,
		"Show version information (shorthand)")

	flag.BoolVar(&args.ShowHelp, "help", false,
		"Show help message")
	flag.BoolVar(&args.ShowHelp, "h", false,
		"Show help message (shorthand)")

	flag.Parse()

	args.LogLevel, args.HasLogLevel = parseLogLevel(logLevelStr)
	return args
}

func parseLogLevel(s string) (types.LogLevel, bool) {
	switch s {
	case "debug":
		return types.LogLevelDebug, true
	case "info":
		return types.LogLevelInfo, true
	case "warning", "warn":
		return types.LogLevelWarning, true
	case "error":
		return types.LogLevelError, true
	case "critical":
		return types.LogLevelCritical, true
	}
	return types.LogLevelInfo, false
}

// PrintUsage writes the help text.
func PrintUsage(w io.Writer, version string) {
	fmt.Fprintf(w, "robosave %s - interactive directory backup orchestrator\n\n", version)
	fmt.Fprintf(w, "Usage: %s [options]\n\nOptions:\n", os.Args[0])
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
}
