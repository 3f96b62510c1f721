package cli

import (
	"context"

	"todo-tracker/internal/errors"
	"todo-tracker/internal/search"
)

// SearchOptions controls search scope and result ordering.
type SearchOptions struct {
	Fields  []string
	SortKey string
	Reverse bool
}

// SearchCommand handles the search command
type SearchCommand struct {
	app *App
}

// NewSearchCommand creates a new search command handler
func NewSearchCommand(app *App) *SearchCommand {
	return &SearchCommand{app: app}
}

// Execute finds the tasks matching the keyword in the selected fields
// and prints them, optionally sorted.
func (c *SearchCommand) Execute(ctx context.Context, keyword string, opts SearchOptions) error {
	fields, err := parseFields(opts.Fields)
	if err != nil {
		return c.app.errorHandler.HandleSimple(err)
	}

	tasks := search.ByKeyword(c.app.store.List(), keyword, fields...)

	if opts.SortKey != "" {
		key := search.SortKey(opts.SortKey)
		if !key.IsValid() {
			return c.app.errorHandler.HandleSimple(
				errors.NewInvalidInputError("sort", opts.SortKey, "must be one of: id, title, priority, dueDate"))
		}
		tasks = search.Sort(tasks, key, opts.Reverse)
	}

	c.app.renderer.RenderList(tasks)
	return nil
}

func parseFields(names []string) ([]search.Field, error) {
	fields := make([]search.Field, 0, len(names))
	for _, name := range names {
		switch f := search.Field(name); f {
		case search.FieldTitle, search.FieldDescription, search.FieldTags, search.FieldDueDate:
			fields = append(fields, f)
		default:
			return nil, errors.NewInvalidInputError("field", name,
				"must be one of: title, description, tags, dueDate")
		}
	}
	return fields, nil
}
