package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/example/casebook/internal/ports/primary"
	"github.com/example/casebook/internal/wire"
)

var logActions = []string{"create", "update", "delete", "repair_move", "repair_merge"}

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the audit trail",
		Long:  "Show recent audit log entries (default 50), newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			entityID, _ := cmd.Flags().GetString("entity")
			entityType, _ := cmd.Flags().GetString("type")
			action, _ := cmd.Flags().GetString("action")

			if limit <= 0 {
				limit = 50
			}
			if action != "" && !slices.Contains(logActions, action) {
				return fmt.Errorf("invalid action %q (valid: %v)", action, logActions)
			}

			return wire.LogAdapterWithOutput(cmd.OutOrStdout()).List(NewContext(), primary.LogFilters{
				EntityType: entityType,
				EntityID:   entityID,
				Action:     action,
				Limit:      limit,
			})
		},
	}
	cmd.Flags().IntP("limit", "n", 50, "Number of entries to show")
	cmd.Flags().StringP("entity", "e", "", "Filter by entity ID")
	cmd.Flags().StringP("type", "t", "", "Filter by entity type (case, strategy, scenario)")
	cmd.Flags().StringP("action", "a", "", "Filter by action")
	return cmd
}
