package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/casebook/internal/wire"
)

// ScenarioCmd returns the scenario command
func ScenarioCmd() *cobra.Command {
	scenarioCmd := &cobra.Command{
		Use:   "scenario",
		Short: "Manage scenario briefs",
		Long:  "Attach, list, and delete the hearing scenario briefs of a case",
	}

	createCmd := &cobra.Command{
		Use:   "create [case-id] [title]",
		Short: "Attach a scenario brief to a case",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, _ := cmd.Flags().GetString("script")
			return wire.StrategyAdapterWithOutput(cmd.OutOrStdout()).CreateScenario(NewContext(), args[0], args[1], script)
		},
	}
	createCmd.Flags().StringP("script", "s", "", "Scenario script")

	listCmd := &cobra.Command{
		Use:   "list [case-id]",
		Short: "List the scenario briefs of a case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.StrategyAdapterWithOutput(cmd.OutOrStdout()).ListScenarios(NewContext(), args[0])
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [scenario-id]",
		Short: "Delete a scenario brief",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.StrategyAdapterWithOutput(cmd.OutOrStdout()).DeleteScenario(NewContext(), args[0])
		},
	}

	scenarioCmd.AddCommand(createCmd)
	scenarioCmd.AddCommand(listCmd)
	scenarioCmd.AddCommand(deleteCmd)

	return scenarioCmd
}
