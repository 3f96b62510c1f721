package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the todo tracker application
type Config struct {
	Storage     StorageConfig     `toml:"storage"`
	Reminder    ReminderConfig    `toml:"reminder"`
	Validation  ValidationConfig  `toml:"validation"`
	Logging     LoggingConfig     `toml:"logging"`
	Application ApplicationConfig `toml:"application"`
}

// StorageConfig selects and locates the persistence backend
type StorageConfig struct {
	Backend  string `toml:"backend" env:"TODO_STORAGE_BACKEND"`
	Dir      string `toml:"dir" env:"TODO_STORAGE_DIR"`
	Filename string `toml:"filename" env:"TODO_STORAGE_FILENAME"`
}

// ReminderConfig holds the watch daemon timing and delivery channel
type ReminderConfig struct {
	Interval       time.Duration `toml:"interval" env:"TODO_REMINDER_INTERVAL"`
	WindowHours    int           `toml:"window_hours" env:"TODO_REMINDER_WINDOW_HOURS"`
	LookaheadHours int           `toml:"lookahead_hours" env:"TODO_REMINDER_LOOKAHEAD_HOURS"`
	Notifier       string        `toml:"notifier" env:"TODO_REMINDER_NOTIFIER"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength       int `toml:"title_max_length" env:"TODO_VALIDATION_TITLE_MAX"`
	DescriptionMaxLength int `toml:"description_max_length" env:"TODO_VALIDATION_DESCRIPTION_MAX"`
}

// LoggingConfig holds logger construction settings
type LoggingConfig struct {
	Level      string `toml:"level" env:"TODO_LOG_LEVEL"`
	File       string `toml:"file" env:"TODO_LOG_FILE"`
	MaxSizeMB  int    `toml:"max_size_mb" env:"TODO_LOG_MAX_SIZE_MB"`
	MaxBackups int    `toml:"max_backups" env:"TODO_LOG_MAX_BACKUPS"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" env:"TODO_APP_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"TODO_APP_VERBOSE"`
}

// Supported storage backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Supported notification channels. The log channel is for headless
// environments where desktop delivery is unavailable.
const (
	NotifierDesktop = "desktop"
	NotifierLog     = "log"
)

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDir := filepath.Join(homeDir, ".todo")

	return &Config{
		Storage: StorageConfig{
			Backend:  BackendJSON,
			Dir:      defaultDir,
			Filename: "tasks.json",
		},
		Reminder: ReminderConfig{
			Interval:       60 * time.Second,
			WindowHours:    1,
			LookaheadHours: 24,
			Notifier:       NotifierDesktop,
		},
		Validation: ValidationConfig{
			TitleMaxLength:       100,
			DescriptionMaxLength: 500,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
			Verbose: false,
		},
	}
}

// GetStoragePath returns the full path to the tasks file
func (c *Config) GetStoragePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// DefaultConfigPath returns the conventional config file location
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".todo", "config.toml")
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	if backend := os.Getenv("TODO_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
	if dir := os.Getenv("TODO_STORAGE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TODO_STORAGE_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}

	if interval := os.Getenv("TODO_REMINDER_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Reminder.Interval = d
		}
	}
	if hours := os.Getenv("TODO_REMINDER_WINDOW_HOURS"); hours != "" {
		if n, err := strconv.Atoi(hours); err == nil {
			c.Reminder.WindowHours = n
		}
	}
	if hours := os.Getenv("TODO_REMINDER_LOOKAHEAD_HOURS"); hours != "" {
		if n, err := strconv.Atoi(hours); err == nil {
			c.Reminder.LookaheadHours = n
		}
	}
	if notifier := os.Getenv("TODO_REMINDER_NOTIFIER"); notifier != "" {
		c.Reminder.Notifier = notifier
	}

	if maxLen := os.Getenv("TODO_VALIDATION_TITLE_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.TitleMaxLength = n
		}
	}
	if maxLen := os.Getenv("TODO_VALIDATION_DESCRIPTION_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.DescriptionMaxLength = n
		}
	}

	if level := os.Getenv("TODO_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("TODO_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
	if size := os.Getenv("TODO_LOG_MAX_SIZE_MB"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			c.Logging.MaxSizeMB = n
		}
	}
	if backups := os.Getenv("TODO_LOG_MAX_BACKUPS"); backups != "" {
		if n, err := strconv.Atoi(backups); err == nil {
			c.Logging.MaxBackups = n
		}
	}

	if timeout := os.Getenv("TODO_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("TODO_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Storage.Backend != BackendJSON && c.Storage.Backend != BackendSQLite {
		return &ConfigError{Field: "storage.backend", Message: "backend must be json or sqlite"}
	}
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "storage filename cannot be empty"}
	}

	if c.Reminder.Interval <= 0 {
		return &ConfigError{Field: "reminder.interval", Message: "reminder interval must be positive"}
	}
	if c.Reminder.WindowHours <= 0 {
		return &ConfigError{Field: "reminder.window_hours", Message: "reminder window must be positive"}
	}
	if c.Reminder.LookaheadHours < c.Reminder.WindowHours {
		return &ConfigError{Field: "reminder.lookahead_hours", Message: "lookahead must not be smaller than the reminder window"}
	}
	if c.Reminder.Notifier != NotifierDesktop && c.Reminder.Notifier != NotifierLog {
		return &ConfigError{Field: "reminder.notifier", Message: "notifier must be desktop or log"}
	}

	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length must be at least 1"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
