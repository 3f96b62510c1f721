package cli

import (
	"context"

	"todo-tracker/internal/domain"
	"todo-tracker/internal/errors"
	"todo-tracker/internal/search"
)

// ListOptions controls filtering and ordering of the list output.
type ListOptions struct {
	SortKey string
	Reverse bool
	Open    bool
	Done    bool
}

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute prints the task list, optionally filtered by completion state
// and reordered by the requested sort key.
func (c *ListCommand) Execute(ctx context.Context, opts ListOptions) error {
	tasks := c.app.store.List()
	tasks = filterByStatus(tasks, opts)

	if opts.SortKey != "" {
		key := search.SortKey(opts.SortKey)
		if !key.IsValid() {
			return c.app.errorHandler.HandleSimple(
				errors.NewInvalidInputError("sort", opts.SortKey, "must be one of: id, title, priority, dueDate"))
		}
		tasks = search.Sort(tasks, key, opts.Reverse)
	} else if opts.Reverse {
		tasks = search.Sort(tasks, search.SortByID, true)
	}

	c.app.renderer.RenderList(tasks)
	return nil
}

func filterByStatus(tasks []*domain.Task, opts ListOptions) []*domain.Task {
	if opts.Open == opts.Done {
		return tasks
	}
	filtered := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed == opts.Done {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
