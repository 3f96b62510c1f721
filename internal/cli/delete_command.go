package cli

import (
	"context"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute removes a task permanently.
func (c *DeleteCommand) Execute(ctx context.Context, id int64) error {
	if err := c.app.store.Delete(ctx, id); err != nil {
		return c.app.errorHandler.Handle("delete task", err)
	}

	c.app.renderer.Printf("Deleted task #%d.\n", id)
	return nil
}
