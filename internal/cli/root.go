package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"todo-tracker/internal/config"
	"todo-tracker/internal/errors"
	"todo-tracker/internal/logging"
	"todo-tracker/internal/notify"
	"todo-tracker/internal/reminder"
	"todo-tracker/internal/repository"
	"todo-tracker/internal/store"
	"todo-tracker/internal/validation"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	app    *App
	repo   repository.Repository
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config) *RootCommand {
	root := &RootCommand{
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "A command-line task tracker with reminders",
		Long: `Todo Tracker (todo) is a command-line application for managing tasks.

FEATURES:
  • Add, update, delete and inspect tasks
  • Toggle completion, with recurring tasks rescheduling themselves
  • Search by keyword across titles, descriptions, tags and due dates
  • Sort by id, title, priority or due date
  • Due-date reminders via desktop notifications
  • Fully configurable via config file, environment variables and flags

EXAMPLES:
  todo add "Pay rent" --due 2026-09-01 --priority high    # Add a dated task
  todo add "Standup" --recurring --frequency daily        # Add a recurring task
  todo list --sort dueDate                                # List tasks by due date
  todo toggle 3                                           # Mark task 3 done
  todo search rent                                        # Find tasks mentioning "rent"
  todo upcoming                                           # Tasks due in the next 24h
  todo watch                                              # Run the reminder daemon

CONFIGURATION:
  Priority order: command-line flags > environment variables > config file > defaults
  Config file location: ~/.todo/config.toml

  Storage Configuration:
    TODO_STORAGE_BACKEND                   Storage backend, json or sqlite (default: json)
    TODO_STORAGE_DIR                       Storage directory (default: ~/.todo)
    TODO_STORAGE_FILENAME                  Storage filename (default: tasks.json)

  Reminder Configuration:
    TODO_REMINDER_INTERVAL                 Scan interval (default: 60s)
    TODO_REMINDER_WINDOW_HOURS             Notification window in hours (default: 1)
    TODO_REMINDER_LOOKAHEAD_HOURS          Upcoming deadline horizon in hours (default: 24)
    TODO_REMINDER_NOTIFIER                 Notification channel, desktop or log (default: desktop)

  Validation Configuration:
    TODO_VALIDATION_TITLE_MAX              Max title length (default: 100)
    TODO_VALIDATION_DESCRIPTION_MAX        Max description length (default: 500)

  Logging Configuration:
    TODO_LOG_LEVEL                         Log level (default: info)
    TODO_LOG_FILE                          Optional rotating log file

  Application Configuration:
    TODO_APP_TIMEOUT                       Application timeout (default: 30s)
    TODO_APP_VERBOSE                       Enable verbose output (default: false)

DATE FORMATS:
  Due dates accept ISO dates (2026-09-01), slash and dash variants
  (09/01/2026), and natural language ("tomorrow", "next friday").

GETTING HELP:
  todo [command] --help                    # Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.getConfigFromFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// Close releases the storage backend if one was opened.
func (r *RootCommand) Close() error {
	if r.repo != nil {
		return r.repo.Close()
	}
	return nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("storage-backend", "", "Storage backend, json or sqlite (overrides TODO_STORAGE_BACKEND)")
	flags.String("storage-dir", "", "Storage directory (overrides TODO_STORAGE_DIR)")
	flags.String("storage-filename", "", "Storage filename (overrides TODO_STORAGE_FILENAME)")

	flags.Duration("reminder-interval", 0, "Reminder scan interval (overrides TODO_REMINDER_INTERVAL)")
	flags.Int("window-hours", 0, "Notification window in hours (overrides TODO_REMINDER_WINDOW_HOURS)")
	flags.Int("lookahead-hours", 0, "Upcoming deadline horizon in hours (overrides TODO_REMINDER_LOOKAHEAD_HOURS)")
	flags.String("notifier", "", "Notification channel, desktop or log (overrides TODO_REMINDER_NOTIFIER)")

	flags.Int("title-max-length", 0, "Maximum title length (overrides TODO_VALIDATION_TITLE_MAX)")
	flags.Int("description-max-length", 0, "Maximum description length (overrides TODO_VALIDATION_DESCRIPTION_MAX)")

	flags.String("log-level", "", "Log level (overrides TODO_LOG_LEVEL)")
	flags.String("log-file", "", "Rotating log file (overrides TODO_LOG_FILE)")

	flags.Duration("app-timeout", 0, "Application timeout (overrides TODO_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TODO_APP_VERBOSE)")
}

// ensureApp builds the storage backend, store and scanner on first use.
// Deferred past PersistentPreRunE so flag overrides are already applied.
func (r *RootCommand) ensureApp(ctx context.Context) (*App, error) {
	if r.app != nil {
		return r.app, nil
	}

	logLevel := r.config.Logging.Level
	if r.config.Application.Verbose {
		logLevel = "debug"
	}
	logger := logging.New(logging.Options{
		Level:      logLevel,
		Prefix:     "todo",
		File:       r.config.Logging.File,
		MaxSizeMB:  r.config.Logging.MaxSizeMB,
		MaxBackups: r.config.Logging.MaxBackups,
	})

	repo, err := config.CreateRepository(r.config)
	if err != nil {
		return nil, err
	}
	r.repo = repo

	var notifier notify.Notifier
	if r.config.Reminder.Notifier == config.NotifierLog {
		notifier = notify.NewLogNotifier(logger)
	} else {
		notifier = notify.NewDesktopNotifier()
	}
	validator := validation.NewTaskValidatorWithLimits(
		r.config.Validation.TitleMaxLength,
		r.config.Validation.DescriptionMaxLength,
	)

	taskStore, err := store.NewWithOptions(ctx, repo, notifier, logger, store.Options{
		Validator:           validator,
		ReminderWindowHours: r.config.Reminder.WindowHours,
	})
	if err != nil {
		return nil, err
	}

	scanner := reminder.NewWithOptions(repo, notifier, logger, reminder.Options{
		Interval:       r.config.Reminder.Interval,
		WindowHours:    r.config.Reminder.WindowHours,
		LookaheadHours: r.config.Reminder.LookaheadHours,
	})

	r.app = NewApp(taskStore, scanner, logger)
	return r.app, nil
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a new task with an optional description, priority, tags,
due date and recurrence.

Examples:
  todo add "Pay rent" --due 2026-09-01 --priority high
  todo add "Water plants" --recurring --frequency weekly --tags home
  todo add "Quarterly report" -d "Q3 numbers" --due "next friday" --tags work`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			app, err := r.ensureApp(ctx)
			if err != nil {
				return err
			}

			description, _ := cmd.Flags().GetString("description")
			priority, _ := cmd.Flags().GetString("priority")
			tags, _ := cmd.Flags().GetStringSlice("tags")
			due, _ := cmd.Flags().GetString("due")
			recurring, _ := cmd.Flags().GetBool("recurring")
			frequency, _ := cmd.Flags().GetString("frequency")

			return NewAddCommand(app).Execute(ctx, strings.Join(args, " "), AddOptions{
				Description: description,
				Priority:    priority,
				Tags:        tags,
				DueDate:     due,
				Recurring:   recurring,
				Frequency:   frequency,
			})
		},
	}
	addCmd.Flags().StringP("description", "d", "", "Task description")
	addCmd.Flags().StringP("priority", "p", "", "Task priority: high, medium or low")
	addCmd.Flags().StringSlice("tags", nil, "Task tags (allowed: work, home)")
	addCmd.Flags().String("due", "", "Due date")
	addCmd.Flags().Bool("recurring", false, "Mark the task as recurring")
	addCmd.Flags().String("frequency", "", "Recurrence frequency: daily, weekly or monthly")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks in insertion order, optionally filtered by completion
state and reordered.

Examples:
  todo list                        # All tasks
  todo list --open                 # Only open tasks
  todo list --sort priority        # Highest priority first
  todo list --sort dueDate --reverse`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			app, err := r.ensureApp(ctx)
			if err != nil {
				return err
			}

			sortKey, _ := cmd.Flags().GetString("sort")
			reverse, _ := cmd.Flags().GetBool("reverse")
			open, _ := cmd.Flags().GetBool("open")
			done, _ := cmd.Flags().GetBool("done")

			return NewListCommand(app).Execute(ctx, ListOptions{
				SortKey: sortKey,
				Reverse: reverse,
				Open:    open,
				Done:    done,
			})
		},
	}
	listCmd.Flags().String("sort", "", "Sort key: id, title, priority or dueDate")
	listCmd.Flags().Bool("reverse", false, "Reverse the sort order")
	listCmd.Flags().Bool("open", false, "Show only open tasks")
	listCmd.Flags().Bool("done", false, "Show only completed tasks")

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one task in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			app, err := r.ensureApp(ctx)
			if err != nil {
				return err
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return NewShowCommand(app).Execute(ctx, id)
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update fields of a task",
		Long: `Update one or more fields of a task. Only the flags you pass
change; everything else keeps its current value.

Examples:
  todo update 3 --title "Pay rent (September)"
  todo update 3 --due tomorrow --priority high
  todo update 5 --recurring=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			app, err := r.ensureApp(ctx)
			if err != nil {
				return err
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			var opts UpdateOptions
			if cmd.Flags().Changed("title") {
				v, _ := cmd.Flags().GetString("title")
				opts.Title = &v
			}
			if cmd.Flags().Changed("description") {
				v, _ := cmd.Flags().GetString("description")
				opts.Description = &v
			}
			if cmd.Flags().Changed("priority") {
				v, _ := cmd.Flags().GetString("priority")
				opts.Priority = &v
			}
			if cmd.Flags().Changed("tags") {
				v, _ := cmd.Flags().GetStringSlice("tags")
				opts.Tags = &v
			}
			if cmd.Flags().Changed("due") {
				v, _ := cmd.Flags().GetString("due")
				opts.DueDate = &v
			}
			if cmd.Flags().Changed("recurring") {
				v, _ := cmd.Flags().GetBool("recurring")
				opts.Recurring = &v
			}
			if cmd.Flags().Changed("frequency") {
				v, _ := cmd.Flags().GetString("frequency")
				opts.Frequency = &v
			}

			return NewUpdateCommand(app).Execute(ctx, id, opts)
		},
	}
	updateCmd.Flags().String("title", "", "New title")
	updateCmd.Flags().StringP("description", "d", "", "New description")
	updateCmd.Flags().StringP("priority", "p", "", "New priority: high, medium or low")
	updateCmd.Flags().StringSlice("tags", nil, "New tags (allowed: work, home)")
	updateCmd.Flags().String("due", "", "New due date (empty clears it)")
	updateCmd.Flags().Bool("recurring", false, "Set or clear recurrence")
	updateCmd.Flags().String("frequency", "", "New recurrence frequency: daily, weekly or monthly")

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Long:  "Delete a task permanently. Its id is never reused.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			app, err := r.ensureApp(ctx)
			if err != nil {
				return err
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return NewDeleteCommand(app).Execute(ctx, id)
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle [id]",
		Short: "Toggle a task's completion state",
		Long: `Toggle a task between open and completed. Completing a recurring
task schedules its next occurrence as a new task.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			app, err := r.ensureApp(ctx)
			if err != nil {
				return err
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return NewToggleCommand(app).Execute(ctx, id)
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search tasks by keyword",
		Long: `Search tasks by keyword, case-insensitively. By default all of
title, description, tags and due date are searched.

Examples:
  todo search rent
  todo search work --fields tags
  todo search report --sort dueDate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			app, err := r.ensureApp(ctx)
			if err != nil {
				return err
			}

			fields, _ := cmd.Flags().GetStringSlice("fields")
			sortKey, _ := cmd.Flags().GetString("sort")
			reverse, _ := cmd.Flags().GetBool("reverse")

			return NewSearchCommand(app).Execute(ctx, strings.Join(args, " "), SearchOptions{
				Fields:  fields,
				SortKey: sortKey,
				Reverse: reverse,
			})
		},
	}
	searchCmd.Flags().StringSlice("fields", nil, "Fields to search: title, description, tags, dueDate")
	searchCmd.Flags().String("sort", "", "Sort key: id, title, priority or dueDate")
	searchCmd.Flags().Bool("reverse", false, "Reverse the sort order")

	upcomingCmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List tasks due within the lookahead horizon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			app, err := r.ensureApp(ctx)
			if err != nil {
				return err
			}
			return NewUpcomingCommand(app).Execute(ctx)
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the reminder daemon",
		Long: `Scan for tasks entering the notification window and alert once per
task. Runs until interrupted; each scan reloads the task list so edits
made by other todo invocations are picked up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Watching runs until interrupted, no timeout
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			app, err := r.ensureApp(ctx)
			if err != nil {
				return err
			}
			return NewWatchCommand(app).Execute(ctx)
		},
	}

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		showCmd,
		updateCmd,
		deleteCmd,
		toggleCmd,
		searchCmd,
		upcomingCmd,
		watchCmd,
	)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 30 * time.Second
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	if backend, _ := flags.GetString("storage-backend"); backend != "" {
		r.config.Storage.Backend = backend
	}
	if dir, _ := flags.GetString("storage-dir"); dir != "" {
		r.config.Storage.Dir = dir
	}
	if filename, _ := flags.GetString("storage-filename"); filename != "" {
		r.config.Storage.Filename = filename
	}

	if interval, _ := flags.GetDuration("reminder-interval"); interval > 0 {
		r.config.Reminder.Interval = interval
	}
	if hours, _ := flags.GetInt("window-hours"); hours > 0 {
		r.config.Reminder.WindowHours = hours
	}
	if hours, _ := flags.GetInt("lookahead-hours"); hours > 0 {
		r.config.Reminder.LookaheadHours = hours
	}
	if notifier, _ := flags.GetString("notifier"); notifier != "" {
		r.config.Reminder.Notifier = notifier
	}

	if maxLen, _ := flags.GetInt("title-max-length"); maxLen > 0 {
		r.config.Validation.TitleMaxLength = maxLen
	}
	if maxLen, _ := flags.GetInt("description-max-length"); maxLen > 0 {
		r.config.Validation.DescriptionMaxLength = maxLen
	}

	if level, _ := flags.GetString("log-level"); level != "" {
		r.config.Logging.Level = level
	}
	if file, _ := flags.GetString("log-file"); file != "" {
		r.config.Logging.File = file
	}

	if timeout, _ := flags.GetDuration("app-timeout"); timeout > 0 {
		r.config.Application.Timeout = timeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}

	return r.config.Validate()
}

// parseTaskID parses a positional id argument.
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, errors.NewInvalidInputError("id", arg, "must be a positive integer")
	}
	return id, nil
}
