package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/casebook/internal/ports/primary"
)

// LogAdapter renders the audit trail.
type LogAdapter struct {
	service primary.LogService
	out     io.Writer
}

// NewLogAdapter creates a new LogAdapter with the given service.
func NewLogAdapter(service primary.LogService, out io.Writer) *LogAdapter {
	return &LogAdapter{
		service: service,
		out:     out,
	}
}

// List prints audit entries, newest first.
func (a *LogAdapter) List(ctx context.Context, filters primary.LogFilters) error {
	entries, err := a.service.ListLogs(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to fetch logs: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No log entries found.")
		return nil
	}

	for _, e := range entries {
		a.printEntry(e)
	}
	return nil
}

func (a *LogAdapter) printEntry(e *primary.LogEntry) {
	actor := e.ActorID
	if actor == "" {
		actor = "-"
	}

	line := fmt.Sprintf("%s  %-8s %-13s %s %s", e.CreatedAt, actor, actionLabel(e.Action), e.EntityType, e.EntityID)
	switch {
	case e.Action == "repair_merge":
		line += fmt.Sprintf(" → %s", e.NewValue)
	case e.FieldName != "":
		line += fmt.Sprintf(" %s: %q → %q", e.FieldName, e.OldValue, e.NewValue)
	}
	fmt.Fprintln(a.out, line)
}

func actionLabel(action string) string {
	switch action {
	case "create":
		return color.New(color.FgGreen).Sprint(action)
	case "delete", "repair_merge":
		return color.New(color.FgRed).Sprint(action)
	case "repair_move":
		return color.New(color.FgYellow).Sprint(action)
	default:
		return action
	}
}
