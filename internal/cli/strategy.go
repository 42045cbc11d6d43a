package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/casebook/internal/wire"
)

// StrategyCmd returns the strategy command
func StrategyCmd() *cobra.Command {
	strategyCmd := &cobra.Command{
		Use:   "strategy",
		Short: "Manage litigation strategies",
		Long:  "Create, list, move, and delete the strategies attached to cases",
	}

	createCmd := &cobra.Command{
		Use:   "create [case-id] [title]",
		Short: "Create a strategy under a case",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, _ := cmd.Flags().GetString("body")
			return wire.StrategyAdapterWithOutput(cmd.OutOrStdout()).Create(NewContext(), args[0], args[1], body)
		},
	}
	createCmd.Flags().StringP("body", "b", "", "Strategy body")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			caseID, _ := cmd.Flags().GetString("case")
			return wire.StrategyAdapterWithOutput(cmd.OutOrStdout()).List(NewContext(), caseID)
		},
	}
	listCmd.Flags().String("case", "", "Only strategies of this case")

	showCmd := &cobra.Command{
		Use:   "show [strategy-id]",
		Short: "Show a strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.StrategyAdapterWithOutput(cmd.OutOrStdout()).Show(NewContext(), args[0])
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update [strategy-id]",
		Short: "Update a strategy's title or body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			body, _ := cmd.Flags().GetString("body")
			return wire.StrategyAdapterWithOutput(cmd.OutOrStdout()).Update(NewContext(), args[0], title, body)
		},
	}
	updateCmd.Flags().StringP("title", "t", "", "New title")
	updateCmd.Flags().StringP("body", "b", "", "New body")

	moveCmd := &cobra.Command{
		Use:   "move [strategy-id] [case-id]",
		Short: "Move a strategy to another case",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.StrategyAdapterWithOutput(cmd.OutOrStdout()).Move(NewContext(), args[0], args[1])
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [strategy-id]",
		Short: "Delete a strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.StrategyAdapterWithOutput(cmd.OutOrStdout()).Delete(NewContext(), args[0])
		},
	}

	strategyCmd.AddCommand(createCmd)
	strategyCmd.AddCommand(listCmd)
	strategyCmd.AddCommand(showCmd)
	strategyCmd.AddCommand(updateCmd)
	strategyCmd.AddCommand(moveCmd)
	strategyCmd.AddCommand(deleteCmd)

	return strategyCmd
}
