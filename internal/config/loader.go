package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configFile string
}

// NewLoader creates a new configuration loader reading the conventional
// config file location when present.
func NewLoader() *Loader {
	return &Loader{
		config:     NewConfig(),
		configFile: DefaultConfigPath(),
	}
}

// NewLoaderWithFile creates a loader reading an explicit config file.
func NewLoaderWithFile(path string) *Loader {
	return &Loader{
		config:     NewConfig(),
		configFile: path,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, if one exists
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFromFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFromFile merges the TOML config file into the defaults. A missing
// file is not an error; a malformed one is.
func (l *Loader) loadFromFile() error {
	if l.configFile == "" {
		return nil
	}
	if _, err := os.Stat(l.configFile); os.IsNotExist(err) {
		return nil
	}
	if _, err := toml.DecodeFile(l.configFile, l.config); err != nil {
		return &ConfigError{Field: "file", Message: "cannot parse " + l.configFile + ": " + err.Error()}
	}
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	StorageBackend  *string
	StorageDir      *string
	StorageFilename *string

	// Reminder overrides
	ReminderInterval *time.Duration
	WindowHours      *int
	LookaheadHours   *int
	ReminderNotifier *string

	// Validation overrides
	TitleMaxLength       *int
	DescriptionMaxLength *int

	// Logging overrides
	LogLevel *string
	LogFile  *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.StorageBackend != nil {
		config.Storage.Backend = *overrides.StorageBackend
	}
	if overrides.StorageDir != nil {
		config.Storage.Dir = *overrides.StorageDir
	}
	if overrides.StorageFilename != nil {
		config.Storage.Filename = *overrides.StorageFilename
	}

	if overrides.ReminderInterval != nil {
		config.Reminder.Interval = *overrides.ReminderInterval
	}
	if overrides.WindowHours != nil {
		config.Reminder.WindowHours = *overrides.WindowHours
	}
	if overrides.LookaheadHours != nil {
		config.Reminder.LookaheadHours = *overrides.LookaheadHours
	}
	if overrides.ReminderNotifier != nil {
		config.Reminder.Notifier = *overrides.ReminderNotifier
	}

	if overrides.TitleMaxLength != nil {
		config.Validation.TitleMaxLength = *overrides.TitleMaxLength
	}
	if overrides.DescriptionMaxLength != nil {
		config.Validation.DescriptionMaxLength = *overrides.DescriptionMaxLength
	}

	if overrides.LogLevel != nil {
		config.Logging.Level = *overrides.LogLevel
	}
	if overrides.LogFile != nil {
		config.Logging.File = *overrides.LogFile
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
