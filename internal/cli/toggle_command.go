package cli

import (
	"context"
)

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	app *App
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{app: app}
}

// Execute flips a task's completion state. Completing a recurring task
// also reports the successor instance that was scheduled.
func (c *ToggleCommand) Execute(ctx context.Context, id int64) error {
	successor, err := c.app.store.ToggleCompletion(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("toggle task", err)
	}

	task, err := c.app.store.Get(id)
	if err != nil {
		return c.app.errorHandler.Handle("toggle task", err)
	}

	c.app.renderer.Printf("Task #%d is now %s.\n", task.ID, task.StatusText())
	if successor != nil {
		c.app.renderer.Printf("Next occurrence scheduled as task #%d, due %s.\n",
			successor.ID, successor.DueDate)
	}
	return nil
}
