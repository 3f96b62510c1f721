package domain

import (
	"time"
)

// Priority represents the urgency level of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists all allowed priority values.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid checks if the priority is one of the allowed values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Frequency represents how often a recurring task repeats.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Frequencies lists all allowed frequency values.
func Frequencies() []Frequency {
	return []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}
}

// IsValid checks if the frequency is one of the allowed values.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// AllowedTags is the fixed tag vocabulary. Writes carrying any other tag
// are rejected as a whole.
var AllowedTags = []string{"work", "home"}

// IsAllowedTag checks if a tag belongs to the allowed vocabulary.
func IsAllowedTag(tag string) bool {
	for _, t := range AllowedTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Task represents a task in the domain model.
// ID and CreatedAt are assigned by the store and immutable afterwards.
type Task struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	Priority    Priority
	Tags        []string // insertion order preserved for display
	IsRecurring bool
	Frequency   Frequency // meaningful only when IsRecurring is true
	DueDate     string    // YYYY-MM-DD, empty when unset
}

// HasDueDate reports whether the task carries a due date.
func (t Task) HasDueDate() bool {
	return t.DueDate != ""
}

// StatusText returns a text representation of the task's completion status.
func (t Task) StatusText() string {
	if t.Completed {
		return "COMPLETED"
	}
	return "PENDING"
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	c.Tags = append([]string(nil), t.Tags...)
	return c
}

// Draft is the candidate field set for creating a task. Validation runs
// against the draft before any entity is constructed.
type Draft struct {
	Title       string
	Description string
	Priority    Priority
	Tags        []string
	IsRecurring bool
	Frequency   Frequency
	DueDate     string
}

// NewDraft creates a draft with default priority.
func NewDraft(title, description string) Draft {
	return Draft{
		Title:       title,
		Description: description,
		Priority:    PriorityMedium,
	}
}

// DraftOf extracts the mutable field set of an existing task as a draft,
// used to re-validate merged updates.
func DraftOf(t Task) Draft {
	return Draft{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Tags:        append([]string(nil), t.Tags...),
		IsRecurring: t.IsRecurring,
		Frequency:   t.Frequency,
		DueDate:     t.DueDate,
	}
}
