package cli

import (
	"context"
)

// UpcomingCommand handles the upcoming command
type UpcomingCommand struct {
	app *App
}

// NewUpcomingCommand creates a new upcoming command handler
func NewUpcomingCommand(app *App) *UpcomingCommand {
	return &UpcomingCommand{app: app}
}

// Execute lists the open tasks whose due date falls inside the reminder
// lookahead horizon.
func (c *UpcomingCommand) Execute(ctx context.Context) error {
	tasks, err := c.app.scanner.UpcomingDeadlines(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list upcoming deadlines", err)
	}

	if len(tasks) == 0 {
		c.app.renderer.Printf("No upcoming deadlines.\n")
		return nil
	}
	c.app.renderer.RenderList(tasks)
	return nil
}
