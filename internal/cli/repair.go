package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/casebook/internal/wire"
)

// RepairCmd returns the repair command
func RepairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Merge duplicate cases",
		Long: `Merge cases that share a docket number once whitespace and Unicode
forms are normalized. In each group the case with the most strategies is
kept; ties go to the most recently updated case, then to the one entered
first. The strategies and scenario briefs of the others move onto it and
the others are deleted. Strategies whose case is already gone are reported,
never touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			return wire.IntegrityAdapterWithOutput(cmd.OutOrStdout()).Repair(NewContext(), dryRun)
		},
	}
	cmd.Flags().Bool("dry-run", false, "Report what would change without writing")
	return cmd
}

// OrphansCmd returns the orphans command
func OrphansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orphans",
		Short: "List strategies whose case no longer exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.IntegrityAdapterWithOutput(cmd.OutOrStdout()).Orphans(NewContext())
		},
	}
}

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file.yaml]",
		Short: "Import a ledger file",
		Long:  "Import cases, strategies, and scenario briefs from a YAML ledger file. Records with existing IDs are replaced.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repair, _ := cmd.Flags().GetBool("repair")
			return wire.IntegrityAdapterWithOutput(cmd.OutOrStdout()).Import(NewContext(), args[0], repair)
		},
	}
	cmd.Flags().Bool("repair", false, "Run a repair after importing")
	return cmd
}

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.yaml]",
		Short: "Export the ledger to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.IntegrityAdapterWithOutput(cmd.OutOrStdout()).Export(NewContext(), args[0])
		},
	}
}
