package cli

import (
	"context"
)

// ShowCommand handles the show command
type ShowCommand struct {
	app *App
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app}
}

// Execute prints the full detail of one task.
func (c *ShowCommand) Execute(ctx context.Context, id int64) error {
	task, err := c.app.store.Get(id)
	if err != nil {
		return c.app.errorHandler.Handle("show task", err)
	}

	c.app.renderer.RenderDetail(task)
	return nil
}
