package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/casebook/internal/wire"
)

// CaseCmd returns the case command
func CaseCmd() *cobra.Command {
	caseCmd := &cobra.Command{
		Use:   "case",
		Short: "Manage cases",
		Long:  "Create, list, and manage the cases in the ledger",
	}

	createCmd := &cobra.Command{
		Use:   "create [docket-number]",
		Short: "Create a new case",
		Long:  "Create a new case. Pass an empty docket number (\"\") for matters not yet filed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			court, _ := cmd.Flags().GetString("court")
			return wire.CaseAdapterWithOutput(cmd.OutOrStdout()).Create(NewContext(), args[0], title, court)
		},
	}
	createCmd.Flags().StringP("title", "t", "", "Case title")
	createCmd.Flags().StringP("court", "c", "", "Court hearing the case")
	_ = createCmd.MarkFlagRequired("title")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			court, _ := cmd.Flags().GetString("court")
			limit, _ := cmd.Flags().GetInt("limit")
			return wire.CaseAdapterWithOutput(cmd.OutOrStdout()).List(NewContext(), court, limit)
		},
	}
	listCmd.Flags().StringP("court", "c", "", "Filter by court")
	listCmd.Flags().IntP("limit", "n", 0, "Maximum number of cases (0 for all)")

	showCmd := &cobra.Command{
		Use:   "show [case-id]",
		Short: "Show case details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			if _, err := wire.CaseAdapterWithOutput(cmd.OutOrStdout()).Show(ctx, args[0]); err != nil {
				return err
			}
			return wire.StrategyAdapterWithOutput(cmd.OutOrStdout()).List(ctx, args[0])
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update [case-id]",
		Short: "Update case title, docket number or court",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			docket, _ := cmd.Flags().GetString("docket")
			court, _ := cmd.Flags().GetString("court")
			return wire.CaseAdapterWithOutput(cmd.OutOrStdout()).Update(NewContext(), args[0], title, docket, court)
		},
	}
	updateCmd.Flags().StringP("title", "t", "", "New case title")
	updateCmd.Flags().StringP("docket", "d", "", "New docket number")
	updateCmd.Flags().StringP("court", "c", "", "New court")

	deleteCmd := &cobra.Command{
		Use:   "delete [case-id]",
		Short: "Delete a case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return wire.CaseAdapterWithOutput(cmd.OutOrStdout()).Delete(NewContext(), args[0], force)
		},
	}
	deleteCmd.Flags().BoolP("force", "f", false, "Delete even when strategies or scenarios reference the case")

	caseCmd.AddCommand(createCmd)
	caseCmd.AddCommand(listCmd)
	caseCmd.AddCommand(showCmd)
	caseCmd.AddCommand(updateCmd)
	caseCmd.AddCommand(deleteCmd)

	return caseCmd
}
