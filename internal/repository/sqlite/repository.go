// Package sqlite implements the persistence collaborator on a SQLite
// database. It is an alternate backend for installations that prefer a
// single queryable file over the JSON store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"todo-tracker/internal/domain"
	"todo-tracker/internal/errors"
	"todo-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository implements the persistence contract on SQLite.
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &Repository{db: db}, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save replaces the persisted task set with the given records inside a
// single transaction, preserving the whole-list save contract.
func (r *Repository) Save(ctx context.Context, records []domain.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStorageError("begin transaction", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		tx.Rollback()
		return errors.NewStorageError("clear tasks", err)
	}

	query := `
	INSERT INTO tasks (id, title, description, completed, created_at, priority, tags, is_recurring, frequency, due_date)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, rec := range records {
		tags, err := encodeTags(rec.Tags)
		if err != nil {
			tx.Rollback()
			return errors.NewStorageError("encode tags", err)
		}
		_, err = tx.ExecContext(ctx, query,
			rec.ID,
			rec.Title,
			rec.Description,
			boolToInt(rec.Completed),
			rec.CreatedAt,
			rec.Priority,
			tags,
			boolToInt(rec.IsRecurring),
			rec.Frequency,
			rec.DueDate,
		)
		if err != nil {
			tx.Rollback()
			return errors.NewStorageError("insert task", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorageError("commit tasks", err)
	}
	return nil
}

// Load retrieves all persisted task records in id order.
func (r *Repository) Load(ctx context.Context) ([]domain.Record, error) {
	query := `
	SELECT id, title, description, completed, created_at, priority, tags, is_recurring, frequency, due_date
	FROM tasks
	ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewStorageError("query tasks", err)
	}
	defer rows.Close()

	records, err := ScanRecords(rows)
	if err != nil {
		return nil, errors.NewStorageError("scan tasks", err)
	}
	return records, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeTags(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
