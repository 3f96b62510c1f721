// Package store owns the authoritative in-memory task collection and the
// completion transition that drives recurring-task rollover. All work is
// synchronous; persistence and notification are best-effort side effects
// of each mutation.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"todo-tracker/internal/dateutil"
	"todo-tracker/internal/domain"
	"todo-tracker/internal/errors"
	"todo-tracker/internal/notify"
	"todo-tracker/internal/repository"
	"todo-tracker/internal/validation"
)

// DefaultReminderWindowHours is the lookahead used when deciding whether a
// freshly written due date should fire an immediate alert.
const DefaultReminderWindowHours = 1

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// Options tunes store construction.
type Options struct {
	Validator           *validation.TaskValidator
	ReminderWindowHours int
}

// Store holds all tasks keyed by id and assigns monotonically increasing
// ids that are never reused within its lifetime.
type Store struct {
	tasks       map[int64]*domain.Task
	nextID      int64
	repo        repository.Repository
	notifier    notify.Notifier
	mapper      *domain.Mapper
	validator   *validation.TaskValidator
	logger      *log.Logger
	windowHours int
}

// New creates a store with default validation limits, loading any
// previously persisted tasks.
func New(ctx context.Context, repo repository.Repository, notifier notify.Notifier, logger *log.Logger) (*Store, error) {
	return NewWithOptions(ctx, repo, notifier, logger, Options{})
}

// NewWithOptions creates a store with explicit options. Corrupt persisted
// data fails construction; the operator has to resolve it rather than
// have the store silently start empty.
func NewWithOptions(ctx context.Context, repo repository.Repository, notifier notify.Notifier, logger *log.Logger, opts Options) (*Store, error) {
	validator := opts.Validator
	if validator == nil {
		validator = validation.NewTaskValidator()
	}
	windowHours := opts.ReminderWindowHours
	if windowHours <= 0 {
		windowHours = DefaultReminderWindowHours
	}

	s := &Store{
		tasks:       make(map[int64]*domain.Task),
		nextID:      1,
		repo:        repo,
		notifier:    notifier,
		mapper:      domain.NewMapper(),
		validator:   validator,
		logger:      logger,
		windowHours: windowHours,
	}

	records, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.mapper.FromRecordSlice(records)
	if err != nil {
		return nil, errors.NewStorageError("reconstruct tasks", err)
	}

	for _, t := range tasks {
		s.tasks[t.ID] = t
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}

	return s, nil
}

// Create validates the draft, assigns the next id and inserts a new task.
// State is untouched on validation failure.
func (s *Store) Create(ctx context.Context, d domain.Draft) (*domain.Task, error) {
	if d.Priority == "" {
		d.Priority = domain.PriorityMedium
	}
	if d.DueDate != "" {
		normalized, err := dateutil.NormalizeDate(d.DueDate)
		if err == nil {
			d.DueDate = normalized
		}
	}

	if err := s.validator.ValidateDraft(d); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:          s.nextID,
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Completed:   false,
		CreatedAt:   timeNow(),
		Priority:    d.Priority,
		Tags:        append([]string(nil), d.Tags...),
		IsRecurring: d.IsRecurring,
		Frequency:   d.Frequency,
		DueDate:     d.DueDate,
	}
	s.nextID++
	s.tasks[task.ID] = task

	s.persist(ctx)
	s.maybeNotify(task)

	result := task.Clone()
	return &result, nil
}

// Get retrieves a task by its id.
func (s *Store) Get(id int64) (*domain.Task, error) {
	if err := s.validator.ValidateTaskID(id); err != nil {
		return nil, err
	}
	task, ok := s.tasks[id]
	if !ok {
		return nil, errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}
	result := task.Clone()
	return &result, nil
}

// List returns all tasks in insertion order (ascending id).
func (s *Store) List() []*domain.Task {
	tasks := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		c := t.Clone()
		tasks = append(tasks, &c)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ID < tasks[j].ID
	})
	return tasks
}

// Count returns the number of stored tasks.
func (s *Store) Count() int {
	return len(s.tasks)
}

// Update merges the patch onto a copy of the task, validates the merged
// field set against all invariants and commits only on success. The
// reminder window is re-checked against the new due date.
func (s *Store) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if err := s.validator.ValidateTaskID(id); err != nil {
		return nil, err
	}
	task, ok := s.tasks[id]
	if !ok {
		return nil, errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}

	if patch.DueDate != nil && *patch.DueDate != "" {
		if normalized, err := dateutil.NormalizeDate(*patch.DueDate); err == nil {
			patch.DueDate = &normalized
		}
	}

	merged := patch.ApplyTo(*task)
	if err := s.validator.ValidateDraft(merged); err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(merged.Title)
	task.Description = merged.Description
	task.Priority = merged.Priority
	task.Tags = append([]string(nil), merged.Tags...)
	task.IsRecurring = merged.IsRecurring
	task.Frequency = merged.Frequency
	task.DueDate = merged.DueDate

	s.persist(ctx)
	s.maybeNotify(task)

	result := task.Clone()
	return &result, nil
}

// Delete removes a task permanently. Its id is never handed out again.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.validator.ValidateTaskID(id); err != nil {
		return err
	}
	if _, ok := s.tasks[id]; !ok {
		return errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}
	delete(s.tasks, id)
	s.persist(ctx)
	return nil
}

// ToggleCompletion flips a non-recurring task's completed flag. Completing
// a recurring task is terminal for that instance: it is marked completed
// and a successor with the next computed due date is inserted. A completed
// recurring task cannot be reopened through this path because its
// successor is the active instance.
func (s *Store) ToggleCompletion(ctx context.Context, id int64) (*domain.Task, error) {
	if err := s.validator.ValidateTaskID(id); err != nil {
		return nil, err
	}
	task, ok := s.tasks[id]
	if !ok {
		return nil, errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}

	if !task.IsRecurring {
		task.Completed = !task.Completed
		s.persist(ctx)
		return nil, nil
	}

	if task.Completed {
		return nil, errors.NewValidationError(
			"completed recurring task cannot be reopened: its successor is the active instance", nil)
	}

	task.Completed = true
	successor := s.spawnSuccessor(ctx, task)
	s.persist(ctx)

	if successor == nil {
		return nil, nil
	}
	result := successor.Clone()
	return &result, nil
}

// spawnSuccessor inserts the next instance of a recurring task. When the
// next occurrence cannot be computed the completed instance is simply not
// replaced; the rollover is logged and skipped.
func (s *Store) spawnSuccessor(ctx context.Context, task *domain.Task) *domain.Task {
	base := task.DueDate
	if base == "" {
		base = task.CreatedAt.Format(dateutil.DateLayout)
	}

	next, err := dateutil.NextOccurrence(base, string(task.Frequency))
	if err != nil {
		s.logger.Warn("skipping recurring rollover",
			"task", task.ID, "base", base, "frequency", task.Frequency, "err", err)
		return nil
	}

	draft := domain.Draft{
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Tags:        append([]string(nil), task.Tags...),
		IsRecurring: true,
		Frequency:   task.Frequency,
		DueDate:     next,
	}
	if err := s.validator.ValidateDraft(draft); err != nil {
		s.logger.Warn("successor task failed validation",
			"task", task.ID, "err", err)
		return nil
	}

	successor := &domain.Task{
		ID:          s.nextID,
		Title:       draft.Title,
		Description: draft.Description,
		CreatedAt:   timeNow(),
		Priority:    draft.Priority,
		Tags:        draft.Tags,
		IsRecurring: true,
		Frequency:   draft.Frequency,
		DueDate:     next,
	}
	s.nextID++
	s.tasks[successor.ID] = successor
	s.maybeNotify(successor)

	return successor
}

// persist saves the complete task list. Persistence is best-effort: a
// failure is logged and the in-memory effect of the mutation stands.
func (s *Store) persist(ctx context.Context) {
	records := s.mapper.ToRecordSlice(s.List())
	if err := s.repo.Save(ctx, records); err != nil {
		s.logger.Error("persisting tasks failed", "err", err)
	}
}

// maybeNotify fires an alert when the task's due date falls inside the
// reminder window. Delivery failures are logged and swallowed.
func (s *Store) maybeNotify(task *domain.Task) {
	if !task.HasDueDate() || task.Completed {
		return
	}
	if !dateutil.IsWithinHours(task.DueDate, s.windowHours) {
		return
	}
	message := fmt.Sprintf("Task '%s' is due within the next hour!", task.Title)
	if err := s.notifier.SendAlert("Upcoming Task Reminder", message); err != nil {
		s.logger.Warn("reminder notification failed", "task", task.ID, "err", err)
	}
}
