package domain

import (
	"fmt"
	"time"
)

// Record is the flat persistence shape of a task. It is shared by every
// storage backend so that the same file round-trips between them.
type Record struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	CreatedAt   string   `json:"createdAt"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
	IsRecurring bool     `json:"isRecurring"`
	Frequency   string   `json:"frequency"`
	DueDate     string   `json:"dueDate"`
}

// Mapper handles conversion between domain and persistence Task models.
type Mapper struct{}

// NewMapper creates a new Mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// ToRecord converts a domain Task to a persistence Record.
func (m *Mapper) ToRecord(t Task) Record {
	return Record{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		Priority:    string(t.Priority),
		Tags:        append([]string(nil), t.Tags...),
		IsRecurring: t.IsRecurring,
		Frequency:   string(t.Frequency),
		DueDate:     t.DueDate,
	}
}

// FromRecord converts a persistence Record back to a domain Task.
func (m *Mapper) FromRecord(r Record) (Task, error) {
	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("invalid createdAt for task %d: %w", r.ID, err)
	}
	return Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		CreatedAt:   createdAt,
		Priority:    Priority(r.Priority),
		Tags:        append([]string(nil), r.Tags...),
		IsRecurring: r.IsRecurring,
		Frequency:   Frequency(r.Frequency),
		DueDate:     r.DueDate,
	}, nil
}

// ToRecordSlice converts a slice of domain Tasks to Records.
func (m *Mapper) ToRecordSlice(tasks []*Task) []Record {
	records := make([]Record, len(tasks))
	for i, t := range tasks {
		records[i] = m.ToRecord(*t)
	}
	return records
}

// FromRecordSlice converts a slice of Records to domain Tasks.
func (m *Mapper) FromRecordSlice(records []Record) ([]*Task, error) {
	tasks := make([]*Task, len(records))
	for i, r := range records {
		t, err := m.FromRecord(r)
		if err != nil {
			return nil, err
		}
		tasks[i] = &t
	}
	return tasks, nil
}
