package sqlite

import (
	"todo-tracker/internal/domain"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanRecord scans a single task record from a database row
func ScanRecord(scanner Scanner) (*domain.Record, error) {
	rec := &domain.Record{}
	var completed, isRecurring int
	var tags string

	err := scanner.Scan(
		&rec.ID,
		&rec.Title,
		&rec.Description,
		&completed,
		&rec.CreatedAt,
		&rec.Priority,
		&tags,
		&isRecurring,
		&rec.Frequency,
		&rec.DueDate,
	)
	if err != nil {
		return nil, err
	}

	rec.Completed = completed != 0
	rec.IsRecurring = isRecurring != 0
	rec.Tags, err = decodeTags(tags)
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// ScanRecords scans multiple task records from database rows
func ScanRecords(rows Rows) ([]domain.Record, error) {
	records := []domain.Record{}
	for rows.Next() {
		rec, err := ScanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
