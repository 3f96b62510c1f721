// Package reminder runs the periodic due-date scan behind the watch
// command. Each pass reloads the persisted task list so edits made by
// other invocations of the tool are picked up without coordination.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"todo-tracker/internal/dateutil"
	"todo-tracker/internal/domain"
	"todo-tracker/internal/notify"
	"todo-tracker/internal/repository"
)

// DefaultInterval is the pause between scan passes.
const DefaultInterval = 60 * time.Second

// DefaultWindowHours is the lookahead for firing an alert.
const DefaultWindowHours = 1

// DefaultLookaheadHours is the lookahead for listing upcoming deadlines.
const DefaultLookaheadHours = 24

// Options tunes scanner construction.
type Options struct {
	Interval       time.Duration
	WindowHours    int
	LookaheadHours int
}

// Scanner watches persisted tasks and alerts once per task when a due
// date enters the notification window. The dedup table is in-memory
// only; a restarted scanner may alert again for the same task.
type Scanner struct {
	repo           repository.Repository
	notifier       notify.Notifier
	mapper         *domain.Mapper
	logger         *log.Logger
	interval       time.Duration
	windowHours    int
	lookaheadHours int
	lastNotified   map[int64]time.Time
}

// New creates a scanner with default timing.
func New(repo repository.Repository, notifier notify.Notifier, logger *log.Logger) *Scanner {
	return NewWithOptions(repo, notifier, logger, Options{})
}

// NewWithOptions creates a scanner with explicit timing options.
func NewWithOptions(repo repository.Repository, notifier notify.Notifier, logger *log.Logger, opts Options) *Scanner {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	windowHours := opts.WindowHours
	if windowHours <= 0 {
		windowHours = DefaultWindowHours
	}
	lookaheadHours := opts.LookaheadHours
	if lookaheadHours <= 0 {
		lookaheadHours = DefaultLookaheadHours
	}

	return &Scanner{
		repo:           repo,
		notifier:       notifier,
		mapper:         domain.NewMapper(),
		logger:         logger,
		interval:       interval,
		windowHours:    windowHours,
		lookaheadHours: lookaheadHours,
		lastNotified:   make(map[int64]time.Time),
	}
}

// UpcomingDeadlines reloads the task list and returns the open tasks due
// within the lookahead horizon, in ascending id order.
func (s *Scanner) UpcomingDeadlines(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var upcoming []*domain.Task
	for _, t := range tasks {
		if t.Completed || !t.HasDueDate() {
			continue
		}
		if dateutil.IsWithinHours(t.DueDate, s.lookaheadHours) {
			upcoming = append(upcoming, t)
		}
	}
	return upcoming, nil
}

// DueForNotification reloads the task list and returns the open tasks
// inside the notification window that have not already been alerted.
func (s *Scanner) DueForNotification(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var due []*domain.Task
	for _, t := range tasks {
		if t.Completed || !t.HasDueDate() {
			continue
		}
		if _, seen := s.lastNotified[t.ID]; seen {
			continue
		}
		if dateutil.IsWithinHours(t.DueDate, s.windowHours) {
			due = append(due, t)
		}
	}
	return due, nil
}

// Run scans on the configured interval until the context is cancelled.
// Storage and delivery failures are logged and the loop continues; one
// bad pass never stops the watch.
func (s *Scanner) Run(ctx context.Context) error {
	s.logger.Info("reminder scan started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.scan(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder scan stopped")
			return ctx.Err()
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

// scan performs one pass, alerting each newly due task at most once.
func (s *Scanner) scan(ctx context.Context) {
	due, err := s.DueForNotification(ctx)
	if err != nil {
		s.logger.Error("reminder scan failed", "err", err)
		return
	}

	for _, t := range due {
		message := fmt.Sprintf("Task '%s' is due within the next hour!", t.Title)
		if err := s.notifier.SendAlert("Upcoming Task Reminder", message); err != nil {
			s.logger.Warn("reminder notification failed", "task", t.ID, "err", err)
			continue
		}
		s.lastNotified[t.ID] = time.Now()
		s.logger.Debug("reminder sent", "task", t.ID, "due", t.DueDate)
	}
}

func (s *Scanner) load(ctx context.Context) ([]*domain.Task, error) {
	records, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.FromRecordSlice(records)
}
