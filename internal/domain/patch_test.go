package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskPatch_IsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())

	title := "new"
	assert.False(t, TaskPatch{Title: &title}.IsEmpty())
}

func TestTaskPatch_ApplyTo(t *testing.T) {
	base := Task{
		ID:          3,
		Title:       "Pay rent",
		Description: "september",
		Priority:    PriorityMedium,
		Tags:        []string{"home"},
		DueDate:     "2024-09-01",
	}

	t.Run("Empty patch keeps every field", func(t *testing.T) {
		merged := TaskPatch{}.ApplyTo(base)
		assert.Equal(t, DraftOf(base), merged)
	})

	t.Run("Set fields replace, unset fields survive", func(t *testing.T) {
		title := "Pay rent (October)"
		priority := PriorityHigh
		merged := TaskPatch{Title: &title, Priority: &priority}.ApplyTo(base)

		assert.Equal(t, "Pay rent (October)", merged.Title)
		assert.Equal(t, PriorityHigh, merged.Priority)
		assert.Equal(t, "september", merged.Description)
		assert.Equal(t, []string{"home"}, merged.Tags)
		assert.Equal(t, "2024-09-01", merged.DueDate)
	})

	t.Run("Explicit empty value clears a field", func(t *testing.T) {
		due := ""
		merged := TaskPatch{DueDate: &due}.ApplyTo(base)
		assert.Equal(t, "", merged.DueDate)
	})

	t.Run("Base task is not mutated", func(t *testing.T) {
		tags := []string{"work"}
		TaskPatch{Tags: &tags}.ApplyTo(base)
		assert.Equal(t, []string{"home"}, base.Tags)
	})
}
