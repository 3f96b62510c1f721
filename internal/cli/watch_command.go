package cli

import (
	"context"
	"errors"
)

// WatchCommand handles the watch command
type WatchCommand struct {
	app *App
}

// NewWatchCommand creates a new watch command handler
func NewWatchCommand(app *App) *WatchCommand {
	return &WatchCommand{app: app}
}

// Execute runs the reminder scan loop until the context is cancelled.
// Cancellation is the normal way to stop watching, not a failure.
func (c *WatchCommand) Execute(ctx context.Context) error {
	c.app.renderer.Printf("Watching for due tasks. Press Ctrl+C to stop.\n")

	err := c.app.scanner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
