// Package jsonfile implements the persistence collaborator as a single
// pretty-printed JSON array on disk. It is the reference backend.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"todo-tracker/internal/domain"
	"todo-tracker/internal/errors"
)

// Repository persists task records to a JSON file.
type Repository struct {
	path string
}

// New creates a JSON file repository, ensuring the parent directory exists.
func New(path string) (*Repository, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.NewStorageError("create data directory", err)
		}
	}
	return &Repository{path: path}, nil
}

// Save writes the complete record list to the backing file. The write goes
// through a temp file and rename so a crash never leaves a half-written
// task list behind.
func (r *Repository) Save(ctx context.Context, records []domain.Record) error {
	if err := ctx.Err(); err != nil {
		return errors.NewStorageError("save tasks", err)
	}

	if records == nil {
		records = []domain.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.NewStorageError("encode tasks", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.NewStorageError("write tasks file", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return errors.NewStorageError("replace tasks file", err)
	}
	return nil
}

// Load reads all records from the backing file. A missing file is treated
// as an empty task list; unparseable content is surfaced as a storage
// error rather than silently discarded.
func (r *Repository) Load(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStorageError("load tasks", err)
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Record{}, nil
		}
		return nil, errors.NewStorageError("read tasks file", err)
	}

	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.NewStorageError("parse tasks file", err)
	}
	return records, nil
}

// Close is a no-op for the file backend.
func (r *Repository) Close() error {
	return nil
}

// Path returns the location of the backing file.
func (r *Repository) Path() string {
	return r.path
}
