package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"todo-tracker/internal/domain"
)

// Renderer writes task listings and details to an output stream.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to the given stream.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// RenderList prints tasks as an aligned table. An empty list prints a
// short notice instead of an empty table.
func (r *Renderer) RenderList(tasks []*domain.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(r.out, "No tasks found.")
		return
	}

	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tDUE\tTITLE\tTAGS")
	for _, t := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.StatusText(),
			t.Priority,
			orDash(t.DueDate),
			titleWithRecurrence(t),
			orDash(strings.Join(t.Tags, ",")),
		)
	}
	w.Flush()
}

// RenderDetail prints one task with all fields.
func (r *Renderer) RenderDetail(t *domain.Task) {
	fmt.Fprintf(r.out, "Task #%d\n", t.ID)
	fmt.Fprintf(r.out, "  Title:       %s\n", t.Title)
	if t.Description != "" {
		fmt.Fprintf(r.out, "  Description: %s\n", t.Description)
	}
	fmt.Fprintf(r.out, "  Status:      %s\n", t.StatusText())
	fmt.Fprintf(r.out, "  Priority:    %s\n", t.Priority)
	if len(t.Tags) > 0 {
		fmt.Fprintf(r.out, "  Tags:        %s\n", strings.Join(t.Tags, ", "))
	}
	if t.IsRecurring {
		fmt.Fprintf(r.out, "  Recurs:      %s\n", t.Frequency)
	}
	if t.HasDueDate() {
		fmt.Fprintf(r.out, "  Due:         %s\n", t.DueDate)
	}
	fmt.Fprintf(r.out, "  Created:     %s\n", t.CreatedAt.Format("2006-01-02 15:04:05"))
}

// Printf writes a formatted message to the output stream.
func (r *Renderer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

func titleWithRecurrence(t *domain.Task) string {
	if t.IsRecurring {
		return t.Title + " (" + string(t.Frequency) + ")"
	}
	return t.Title
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
