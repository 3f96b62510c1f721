package validation

import (
	"strings"

	"todo-tracker/internal/dateutil"
	"todo-tracker/internal/domain"
)

// Default field limits. Configurable limits override these through
// TaskValidator.
const (
	DefaultTitleMaxLength       = 100
	DefaultDescriptionMaxLength = 500
)

// TaskValidator validates candidate task field sets. Validation is a pure
// check over a draft: it never constructs or mutates entities.
type TaskValidator struct {
	titleMaxLength       int
	descriptionMaxLength int
}

// NewTaskValidator creates a task validator with default limits.
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		titleMaxLength:       DefaultTitleMaxLength,
		descriptionMaxLength: DefaultDescriptionMaxLength,
	}
}

// NewTaskValidatorWithLimits creates a task validator with explicit limits.
func NewTaskValidatorWithLimits(titleMax, descriptionMax int) *TaskValidator {
	return &TaskValidator{
		titleMaxLength:       titleMax,
		descriptionMaxLength: descriptionMax,
	}
}

// ValidateDraft validates a full candidate field set against all entity
// invariants. It returns nil when the draft is acceptable.
func (tv *TaskValidator) ValidateDraft(d domain.Draft) error {
	validationError := NewValidationError()

	title := strings.TrimSpace(d.Title)
	if title == "" {
		validationError.AddRequiredError("title")
	} else if len(title) > tv.titleMaxLength {
		validationError.AddInvalidLengthError("title", d.Title, tv.titleMaxLength)
	}

	if len(d.Description) > tv.descriptionMaxLength {
		validationError.AddInvalidLengthError("description", d.Description, tv.descriptionMaxLength)
	}

	if !d.Priority.IsValid() {
		validationError.AddInvalidValueError("priority", d.Priority, "must be one of high, medium, low")
	}

	for _, tag := range d.Tags {
		if !domain.IsAllowedTag(tag) {
			validationError.AddInvalidValueError("tags", tag, "must be one of work, home")
		}
	}

	if d.IsRecurring && !d.Frequency.IsValid() {
		if d.Frequency == "" {
			validationError.AddRequiredError("frequency")
		} else {
			validationError.AddInvalidValueError("frequency", d.Frequency, "must be one of daily, weekly, monthly")
		}
	}

	if d.DueDate != "" {
		if _, err := dateutil.NormalizeDate(d.DueDate); err != nil {
			validationError.AddInvalidFormatError("dueDate", d.DueDate, "YYYY-MM-DD")
		}
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateTaskID validates a task identifier.
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if id <= 0 {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("id", id, "must be a positive integer")
		return validationError
	}
	return nil
}
