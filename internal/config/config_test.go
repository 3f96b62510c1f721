package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
	assert.Equal(t, "tasks.json", cfg.Storage.Filename)
	assert.Equal(t, 60*time.Second, cfg.Reminder.Interval)
	assert.Equal(t, 1, cfg.Reminder.WindowHours)
	assert.Equal(t, 24, cfg.Reminder.LookaheadHours)
	assert.Equal(t, NotifierDesktop, cfg.Reminder.Notifier)
	assert.Equal(t, 100, cfg.Validation.TitleMaxLength)
	assert.Equal(t, 500, cfg.Validation.DescriptionMaxLength)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_GetStoragePath(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Dir = "/data"
	cfg.Storage.Filename = "tasks.json"

	assert.Equal(t, filepath.Join("/data", "tasks.json"), cfg.GetStoragePath())
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("TODO_STORAGE_BACKEND", "sqlite")
	t.Setenv("TODO_STORAGE_DIR", "/tmp/todo")
	t.Setenv("TODO_REMINDER_INTERVAL", "30s")
	t.Setenv("TODO_REMINDER_NOTIFIER", "log")
	t.Setenv("TODO_VALIDATION_TITLE_MAX", "50")
	t.Setenv("TODO_LOG_LEVEL", "debug")
	t.Setenv("TODO_APP_VERBOSE", "true")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/todo", cfg.Storage.Dir)
	assert.Equal(t, 30*time.Second, cfg.Reminder.Interval)
	assert.Equal(t, NotifierLog, cfg.Reminder.Notifier)
	assert.Equal(t, 50, cfg.Validation.TitleMaxLength)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Application.Verbose)
}

func TestConfig_LoadFromEnvironment_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("TODO_REMINDER_INTERVAL", "not-a-duration")
	t.Setenv("TODO_VALIDATION_TITLE_MAX", "lots")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, 60*time.Second, cfg.Reminder.Interval)
	assert.Equal(t, 100, cfg.Validation.TitleMaxLength)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"Unknown backend", func(c *Config) { c.Storage.Backend = "mysql" }, "storage.backend"},
		{"Empty storage dir", func(c *Config) { c.Storage.Dir = "" }, "storage.dir"},
		{"Empty filename", func(c *Config) { c.Storage.Filename = "" }, "storage.filename"},
		{"Zero interval", func(c *Config) { c.Reminder.Interval = 0 }, "reminder.interval"},
		{"Zero window", func(c *Config) { c.Reminder.WindowHours = 0 }, "reminder.window_hours"},
		{"Lookahead below window", func(c *Config) { c.Reminder.LookaheadHours = 0 }, "reminder.lookahead_hours"},
		{"Unknown notifier", func(c *Config) { c.Reminder.Notifier = "email" }, "reminder.notifier"},
		{"Zero title limit", func(c *Config) { c.Validation.TitleMaxLength = 0 }, "validation.title_max_length"},
		{"Zero timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			configErr, ok := err.(*ConfigError)
			require.True(t, ok)
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}

func TestLoader_LoadWithTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[storage]
backend = "sqlite"
filename = "tasks.db"

[reminder]
window_hours = 2
lookahead_hours = 48

[logging]
level = "warn"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := NewLoaderWithFile(path).Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "tasks.db", cfg.Storage.Filename)
	assert.Equal(t, 2, cfg.Reminder.WindowHours)
	assert.Equal(t, 48, cfg.Reminder.LookaheadHours)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// untouched settings keep their defaults
	assert.Equal(t, 60*time.Second, cfg.Reminder.Interval)
	assert.Equal(t, 100, cfg.Validation.TitleMaxLength)
}

func TestLoader_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := NewLoaderWithFile(filepath.Join(t.TempDir(), "absent.toml")).Load()
	require.NoError(t, err)
	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
}

func TestLoader_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage\nbackend="), 0o644))

	_, err := NewLoaderWithFile(path).Load()
	assert.Error(t, err)
}

func TestLoader_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"warn\"\n"), 0o644))

	t.Setenv("TODO_LOG_LEVEL", "debug")

	cfg, err := NewLoaderWithFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	backend := "sqlite"
	window := 3

	loader := NewLoaderWithFile(filepath.Join(t.TempDir(), "absent.toml"))
	cfg, err := loader.LoadWithOverrides(&ConfigOverrides{
		StorageBackend: &backend,
		WindowHours:    &window,
	})
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, 3, cfg.Reminder.WindowHours)
}

func TestLoader_LoadWithOverrides_RejectsInvalidResult(t *testing.T) {
	backend := "mysql"

	loader := NewLoaderWithFile(filepath.Join(t.TempDir(), "absent.toml"))
	_, err := loader.LoadWithOverrides(&ConfigOverrides{StorageBackend: &backend})
	assert.Error(t, err)
}

func TestCreateRepository_UnknownBackend(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Backend = "mysql"

	_, err := CreateRepository(cfg)
	assert.Error(t, err)
}

func TestCreateRepository_JSONBackend(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Dir = t.TempDir()

	repo, err := CreateRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()
}
