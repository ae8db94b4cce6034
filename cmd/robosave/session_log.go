package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robosave/robosave/internal/logging"
)

const sessionLogTimeFormat = "2006-01-02_15-04-05"

// startSessionLog mirrors every logger entry into a timestamped file
// under the log root, alongside the per-job copy logs. The console
// remains the primary sink: failure to open the file only costs the
// mirror, never the run.
func startSessionLog(logger *logging.Logger, logRoot string) func() {
	if err := os.MkdirAll(logRoot, 0o755); err != nil {
		logger.Warning("Session log disabled: %v", err)
		return func() {}
	}

	path := filepath.Join(logRoot, fmt.Sprintf("Session-%s.log", time.Now().Format(sessionLogTimeFormat)))
	if err := logger.OpenLogFile(path); err != nil {
		logger.Warning("Session log disabled: %v", err)
		return func() {}
	}
	logger.Debug("Session log: %s", path)

	return func() {
		if err := logger.CloseLogFile(); err != nil {
			logger.Warning("Could not close session log: %v", err)
		}
	}
}
