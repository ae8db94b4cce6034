package types

// CopyMode represents the backup mode for a job.
type CopyMode string

const (
	// CopyModeFull - full recursive copy, nothing is deleted at destination
	CopyModeFull CopyMode = "copy"

	// CopyModeMirror - destination becomes an exact mirror of source,
	// including deletions of files absent at source
	CopyModeMirror CopyMode = "mirror"
)

// String returns the string representation of the copy mode.
func (m CopyMode) String() string {
	return string(m)
}

// Destructive reports whether the mode can delete files at the destination.
func (m CopyMode) Destructive() bool {
	return m == CopyModeMirror
}

// ParseCopyMode maps a record token to a CopyMode. Unknown or empty
// tokens fall back to the non-destructive full copy.
func ParseCopyMode(s string) CopyMode {
	if CopyMode(s) == CopyModeMirror {
		return CopyModeMirror
	}
	return CopyModeFull
}

// BackupJob is the unit of work processed by a single loop cycle.
type BackupJob struct {
	// Source directory, must exist and be readable
	Source string

	// Destination directory, created by the copy tool if absent
	Destination string

	// Copy mode for this job
	Mode CopyMode

	// Absolute path of this job's log file, assigned once
	LogPath string
}

// Valid reports whether the job satisfies the basic invariants:
// both paths set and distinct.
func (j BackupJob) Valid() bool {
	return j.Source != "" && j.Destination != "" && j.Source != j.Destination
}

// LogLevel represents the logging level.
type LogLevel int

const (
	// LogLevelDebug - Debug logs (maximum detail)
	LogLevelDebug LogLevel = 5

	// LogLevelInfo - General information
	LogLevelInfo LogLevel = 4

	// LogLevelWarning - Warnings
	LogLevelWarning LogLevel = 3

	// LogLevelError - Errors
	LogLevelError LogLevel = 2

	// LogLevelCritical - Critical errors
	LogLevelCritical LogLevel = 1

	// LogLevelNone - No logs
	LogLevelNone LogLevel = 0
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarning:
		return "WARNING"
	case LogLevelError:
		return "ERROR"
	case LogLevelCritical:
		return "CRITICAL"
	case LogLevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}
