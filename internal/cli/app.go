// Package cli implements the command-line surface. Cobra wiring lives in
// root.go; each subcommand has a small handler that talks to the store
// and renders results.
package cli

import (
	"os"

	"github.com/charmbracelet/log"

	"todo-tracker/internal/reminder"
	"todo-tracker/internal/store"
)

// App bundles the collaborators shared by all command handlers.
type App struct {
	store        *store.Store
	scanner      *reminder.Scanner
	renderer     *Renderer
	errorHandler *ErrorHandler
	logger       *log.Logger
}

// NewApp creates the shared command handler state.
func NewApp(taskStore *store.Store, scanner *reminder.Scanner, logger *log.Logger) *App {
	return &App{
		store:        taskStore,
		scanner:      scanner,
		renderer:     NewRenderer(os.Stdout),
		errorHandler: NewErrorHandler(),
		logger:       logger,
	}
}
