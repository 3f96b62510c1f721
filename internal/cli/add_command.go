package cli

import (
	"context"

	"todo-tracker/internal/domain"
)

// AddOptions carries the optional fields of a new task.
type AddOptions struct {
	Description string
	Priority    string
	Tags        []string
	DueDate     string
	Recurring   bool
	Frequency   string
}

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute creates a task from the title and options and prints it.
func (c *AddCommand) Execute(ctx context.Context, title string, opts AddOptions) error {
	draft := domain.NewDraft(title, opts.Description)
	if opts.Priority != "" {
		draft.Priority = domain.Priority(opts.Priority)
	}
	draft.Tags = opts.Tags
	draft.IsRecurring = opts.Recurring
	draft.Frequency = domain.Frequency(opts.Frequency)
	draft.DueDate = opts.DueDate

	task, err := c.app.store.Create(ctx, draft)
	if err != nil {
		return c.app.errorHandler.Handle("add task", err)
	}

	c.app.renderer.Printf("Added task #%d: %s\n", task.ID, task.Title)
	return nil
}
