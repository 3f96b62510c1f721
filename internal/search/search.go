// Package search filters and orders task slices in memory. Inputs are
// never mutated; both operations return fresh slices.
package search

import (
	"sort"
	"strings"
	"time"

	"todo-tracker/internal/dateutil"
	"todo-tracker/internal/domain"
)

// Field names a searchable task attribute.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldTags        Field = "tags"
	FieldDueDate     Field = "dueDate"
)

// AllFields is the default search scope.
var AllFields = []Field{FieldTitle, FieldDescription, FieldTags, FieldDueDate}

// SortKey names an ordering for task lists.
type SortKey string

const (
	SortByID       SortKey = "id"
	SortByTitle    SortKey = "title"
	SortByPriority SortKey = "priority"
	SortByDueDate  SortKey = "dueDate"
)

// IsValid checks if the sort key is one of the supported orderings.
func (k SortKey) IsValid() bool {
	switch k {
	case SortByID, SortByTitle, SortByPriority, SortByDueDate:
		return true
	}
	return false
}

// priorityRank orders high before medium before low. Unknown values sort
// last so malformed data stays visible at the bottom rather than vanishing.
var priorityRank = map[domain.Priority]int{
	domain.PriorityHigh:   0,
	domain.PriorityMedium: 1,
	domain.PriorityLow:    2,
}

// ByKeyword returns the tasks whose selected fields contain the keyword,
// case-insensitively. An empty keyword matches everything; an empty field
// list searches all fields.
func ByKeyword(tasks []*domain.Task, keyword string, fields ...Field) []*domain.Task {
	if len(fields) == 0 {
		fields = AllFields
	}

	needle := strings.ToLower(strings.TrimSpace(keyword))
	matched := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if needle == "" || matches(t, needle, fields) {
			matched = append(matched, t)
		}
	}
	return matched
}

func matches(t *domain.Task, needle string, fields []Field) bool {
	for _, f := range fields {
		switch f {
		case FieldTitle:
			if strings.Contains(strings.ToLower(t.Title), needle) {
				return true
			}
		case FieldDescription:
			if strings.Contains(strings.ToLower(t.Description), needle) {
				return true
			}
		case FieldTags:
			for _, tag := range t.Tags {
				if strings.Contains(strings.ToLower(tag), needle) {
					return true
				}
			}
		case FieldDueDate:
			if strings.Contains(strings.ToLower(t.DueDate), needle) {
				return true
			}
		}
	}
	return false
}

// Sort returns a new slice ordered by the given key. Ties and unknown
// keys fall back to id order, keeping the output deterministic. Tasks
// without a parseable due date sort before dated ones under SortByDueDate
// so they are not mistaken for far-future work.
func Sort(tasks []*domain.Task, key SortKey, reverse bool) []*domain.Task {
	sorted := make([]*domain.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch key {
		case SortByTitle:
			if !strings.EqualFold(a.Title, b.Title) {
				return strings.ToLower(a.Title) < strings.ToLower(b.Title)
			}
		case SortByPriority:
			ra, rb := rank(a.Priority), rank(b.Priority)
			if ra != rb {
				return ra < rb
			}
		case SortByDueDate:
			da, okA := parseDue(a.DueDate)
			db, okB := parseDue(b.DueDate)
			if okA != okB {
				return !okA
			}
			if okA && !da.Equal(db) {
				return da.Before(db)
			}
		}
		return a.ID < b.ID
	})

	if reverse {
		for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
			sorted[i], sorted[j] = sorted[j], sorted[i]
		}
	}
	return sorted
}

func rank(p domain.Priority) int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

func parseDue(due string) (time.Time, bool) {
	if due == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateutil.DateLayout, due)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
