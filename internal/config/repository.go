package config

import (
	"fmt"

	"todo-tracker/internal/repository"
	"todo-tracker/internal/repository/jsonfile"
	"todo-tracker/internal/repository/sqlite"
)

// CreateRepository creates the persistence backend selected by the
// configuration.
func CreateRepository(config *Config) (repository.Repository, error) {
	switch config.Storage.Backend {
	case BackendSQLite:
		repo, err := sqlite.New(config.GetStoragePath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	case BackendJSON:
		repo, err := jsonfile.New(config.GetStoragePath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tasks file: %w", err)
		}
		return repo, nil
	default:
		return nil, &ConfigError{Field: "storage.backend", Message: "unknown backend " + config.Storage.Backend}
	}
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (repository.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return repo, nil
}
