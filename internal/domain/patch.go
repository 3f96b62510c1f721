package domain

// TaskPatch carries a partial update: one optional slot per mutable field.
// A nil slot leaves the field untouched; a pointer to the zero value clears
// it where clearing is meaningful (description, tags, due date).
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Tags        *[]string
	IsRecurring *bool
	Frequency   *Frequency
	DueDate     *string
}

// IsEmpty reports whether the patch carries no changes.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.Tags == nil && p.IsRecurring == nil && p.Frequency == nil &&
		p.DueDate == nil
}

// ApplyTo merges the patch onto a copy of the task's mutable fields and
// returns the merged draft. The task itself is not modified.
func (p TaskPatch) ApplyTo(t Task) Draft {
	d := DraftOf(t)
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Priority != nil {
		d.Priority = *p.Priority
	}
	if p.Tags != nil {
		d.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.IsRecurring != nil {
		d.IsRecurring = *p.IsRecurring
	}
	if p.Frequency != nil {
		d.Frequency = *p.Frequency
	}
	if p.DueDate != nil {
		d.DueDate = *p.DueDate
	}
	return d
}
