package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapper_RoundTrip(t *testing.T) {
	mapper := NewMapper()
	createdAt := time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

	task := Task{
		ID:          1,
		Title:       "Pay rent",
		Description: "september",
		Completed:   true,
		CreatedAt:   createdAt,
		Priority:    PriorityHigh,
		Tags:        []string{"home"},
		IsRecurring: true,
		Frequency:   FrequencyMonthly,
		DueDate:     "2024-09-01",
	}

	record := mapper.ToRecord(task)
	assert.Equal(t, "2024-06-10T09:30:00Z", record.CreatedAt)

	restored, err := mapper.FromRecord(record)
	require.NoError(t, err)
	assert.Equal(t, task, restored)
}

func TestMapper_FromRecord_InvalidCreatedAt(t *testing.T) {
	mapper := NewMapper()

	_, err := mapper.FromRecord(Record{ID: 1, CreatedAt: "yesterday"})
	assert.Error(t, err)
}

func TestMapper_FromRecordSlice_FailsOnFirstBadRecord(t *testing.T) {
	mapper := NewMapper()
	records := []Record{
		{ID: 1, Title: "ok", CreatedAt: "2024-06-10T09:30:00Z"},
		{ID: 2, Title: "bad", CreatedAt: "not-a-time"},
	}

	_, err := mapper.FromRecordSlice(records)
	assert.Error(t, err)
}
