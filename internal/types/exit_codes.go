// Package types defines shared application data types.
package types

// ExitCode represents the application's exit codes.
type ExitCode int

const (
	// ExitSuccess - Execution completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGenericError - Unspecified generic error.
	ExitGenericError ExitCode = 1

	// ExitConfigError - Configuration error.
	ExitConfigError ExitCode = 2

	// ExitLogSetupError - Log directory could not be created; running
	// a destructive copy without a durable log is disallowed.
	ExitLogSetupError ExitCode = 3

	// ExitCopyError - The copy tool failed to start or reported failure.
	ExitCopyError ExitCode = 4

	// ExitStateError - Error managing the resume state records.
	ExitStateError ExitCode = 5

	// ExitLockError - Another session holds the state-directory lock.
	ExitLockError ExitCode = 6

	// ExitPanicError - Unhandled panic caught.
	ExitPanicError ExitCode = 13
)

// String returns a human-readable description of the exit code.
func (e ExitCode) String() string {
	switch e {
	case ExitSuccess:
		return "success"
	case ExitGenericError:
		return "generic error"
	case ExitConfigError:
		return "configuration error"
	case ExitLogSetupError:
		return "log setup error"
	case ExitCopyError:
		return "copy error"
	case ExitStateError:
		return "state error"
	case ExitLockError:
		return "lock error"
	case ExitPanicError:
		return "panic error"
	default:
		return "unknown error"
	}
}

// Int returns the exit code as an integer.
func (e ExitCode) Int() int {
	return int(e)
}
