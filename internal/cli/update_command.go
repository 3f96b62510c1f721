package cli

import (
	"context"

	"todo-tracker/internal/domain"
)

// UpdateOptions carries the patch fields of an update. Nil pointers mean
// the field was not mentioned and keeps its current value.
type UpdateOptions struct {
	Title       *string
	Description *string
	Priority    *string
	Tags        *[]string
	DueDate     *string
	Recurring   *bool
	Frequency   *string
}

// UpdateCommand handles the update command
type UpdateCommand struct {
	app *App
}

// NewUpdateCommand creates a new update command handler
func NewUpdateCommand(app *App) *UpdateCommand {
	return &UpdateCommand{app: app}
}

// Execute applies the given field changes to a task and prints the
// result. Untouched fields keep their values.
func (c *UpdateCommand) Execute(ctx context.Context, id int64, opts UpdateOptions) error {
	patch := buildPatch(opts)
	if patch.IsEmpty() {
		c.app.renderer.Printf("Nothing to update for task #%d.\n", id)
		return nil
	}

	task, err := c.app.store.Update(ctx, id, patch)
	if err != nil {
		return c.app.errorHandler.Handle("update task", err)
	}

	c.app.renderer.Printf("Updated task #%d.\n", task.ID)
	c.app.renderer.RenderDetail(task)
	return nil
}

func buildPatch(opts UpdateOptions) domain.TaskPatch {
	var patch domain.TaskPatch
	patch.Title = opts.Title
	patch.Description = opts.Description
	if opts.Priority != nil {
		p := domain.Priority(*opts.Priority)
		patch.Priority = &p
	}
	patch.Tags = opts.Tags
	patch.IsRecurring = opts.Recurring
	if opts.Frequency != nil {
		f := domain.Frequency(*opts.Frequency)
		patch.Frequency = &f
	}
	patch.DueDate = opts.DueDate
	return patch
}
