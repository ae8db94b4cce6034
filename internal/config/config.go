// Package config loads robosave settings from an optional KEY=VALUE
// env file and exposes them as an explicit value passed to every
// component, so tests can redirect state and log locations freely.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/robosave/robosave/internal/types"
	"github.com/robosave/robosave/pkg/utils"
)

const (
	// recordBaseName is the shared stem of the resume records; the
	// transient, durable and lock files differ only by extension.
	recordBaseName = "lastjob"

	pendingExt = ".pending"
	durableExt = ".resume"
	lockExt    = ".lock"
)

// Paths groups the filesystem locations the orchestrator depends on.
type Paths struct {
	// StateDir holds the resume records and the session lock.
	StateDir string

	// LogRoot is where per-job copy logs are written.
	LogRoot string
}

// PendingPath returns the transient record location.
func (p Paths) PendingPath() string {
	return filepath.Join(p.StateDir, recordBaseName+pendingExt)
}

// DurablePath returns the durable record location.
func (p Paths) DurablePath() string {
	return filepath.Join(p.StateDir, recordBaseName+durableExt)
}

// LockPath returns the session lock file location.
func (p Paths) LockPath() string {
	return filepath.Join(p.StateDir, recordBaseName+lockExt)
}

// Config holds the parsed application configuration.
type Config struct {
	ConfigPath string

	Paths Paths

	// CopyTool is the external copy/mirror executable.
	CopyTool string

	// RetryCount and RetryWaitSeconds are passed to the copy tool
	// (/R and /W); they govern its transient fault tolerance.
	RetryCount       int
	RetryWaitSeconds int

	// FSTimeoutSeconds bounds individual stat/readdir calls during the
	// pre-flight size scan. Zero disables the guard.
	FSTimeoutSeconds int

	LogLevel types.LogLevel

	// UseTUI selects the tview interface over plain console prompts.
	UseTUI bool

	raw map[string]string
}

// DefaultPaths returns the user-scoped state directory and log root.
func DefaultPaths() Paths {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	root := filepath.Join(base, "robosave")
	return Paths{
		StateDir: root,
		LogRoot:  filepath.Join(root, "logs"),
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Paths:            DefaultPaths(),
		CopyTool:         "robocopy",
		RetryCount:       3,
		RetryWaitSeconds: 5,
		FSTimeoutSeconds: 30,
		LogLevel:         types.LogLevelInfo,
		UseTUI:           true,
	}
}

// LoadConfig loads configuration from the given env file, applied on
// top of the defaults. An empty path returns the defaults unchanged;
// a named file that does not exist is an error.
func LoadConfig(configPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}
	if !utils.FileExists(configPath) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	raw, err := parseEnvFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg.ConfigPath = configPath
	cfg.raw = raw

	cfg.parse()
	return cfg, nil
}

func (c *Config) parse() {
	c.Paths.StateDir = c.getString("STATE_DIR", c.Paths.StateDir)
	c.Paths.LogRoot = c.getString("LOG_ROOT", c.Paths.LogRoot)
	c.CopyTool = c.getString("COPY_TOOL", c.CopyTool)
	c.RetryCount = c.ensurePositiveInt("RETRY_COUNT", c.RetryCount)
	c.RetryWaitSeconds = c.ensurePositiveInt("RETRY_WAIT", c.RetryWaitSeconds)
	c.FSTimeoutSeconds = c.getInt("FS_TIMEOUT", c.FSTimeoutSeconds)
	c.LogLevel = c.getLogLevel("LOG_LEVEL", c.LogLevel)
	c.UseTUI = c.getBool("USE_TUI", c.UseTUI)
}

func parseEnvFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open config file: %w", err)
	}
	defer file.Close()

	raw := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if utils.IsComment(strings.TrimSpace(line)) {
			continue
		}
		key, value, ok := utils.SplitKeyValue(line)
		if !ok {
			continue
		}
		raw[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}
	return raw, nil
}

func (c *Config) getString(key, defaultValue string) string {
	if val, ok := c.raw[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func (c *Config) getBool(key string, defaultValue bool) bool {
	if val, ok := c.raw[key]; ok {
		return utils.ParseBool(val)
	}
	return defaultValue
}

func (c *Config) getInt(key string, defaultValue int) int {
	if val, ok := c.raw[key]; ok {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func (c *Config) ensurePositiveInt(key string, defaultValue int) int {
	value := c.getInt(key, defaultValue)
	if value <= 0 {
		return defaultValue
	}
	return value
}

func (c *Config) getLogLevel(key string, defaultValue types.LogLevel) types.LogLevel {
	val, ok := c.raw[key]
	if !ok {
		return defaultValue
	}
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "debug":
		return types.LogLevelDebug
	case "info":
		return types.LogLevelInfo
	case "warning", "warn":
		return types.LogLevelWarning
	case "error":
		return types.LogLevelError
	case "critical":
		return types.LogLevelCritical
	case "none":
		return types.LogLevelNone
	}
	if intVal, err := strconv.Atoi(val); err == nil {
		return types.LogLevel(intVal)
	}
	return defaultValue
}
