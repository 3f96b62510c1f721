// Package repository defines the persistence collaborator contract. The
// store hands the backend the complete task list after every mutation and
// reloads it in full; backends never see partial writes.
package repository

import (
	"context"

	"todo-tracker/internal/domain"
)

// Repository defines the interface for persistence operations
type Repository interface {
	// Save persists the complete task list, replacing any previous state.
	Save(ctx context.Context, records []domain.Record) error

	// Load returns all persisted task records. A missing backing file
	// yields an empty slice; corrupt data yields an error.
	Load(ctx context.Context) ([]domain.Record, error)

	// Close releases any resources held by the backend.
	Close() error
}
