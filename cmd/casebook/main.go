package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/casebook/internal/cli"
	"github.com/example/casebook/internal/db"
	"github.com/example/casebook/internal/version"
)

var (
	configPath string
	verbose    bool
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "casebook",
		Short:   "casebook - litigation case ledger",
		Version: version.String(),
		Long: `casebook keeps a ledger of court cases, the strategies planned for them,
and hearing scenario briefs. It detects cases entered more than once under
the same docket number and merges them without losing attached work.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = cli.Bootstrap(configPath, verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
			_ = db.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.casebook/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.CaseCmd())
	rootCmd.AddCommand(cli.StrategyCmd())
	rootCmd.AddCommand(cli.ScenarioCmd())

	// Integrity
	rootCmd.AddCommand(cli.RepairCmd())
	rootCmd.AddCommand(cli.OrphansCmd())
	rootCmd.AddCommand(cli.ImportCmd())
	rootCmd.AddCommand(cli.ExportCmd())

	rootCmd.AddCommand(cli.LogCmd())
	rootCmd.AddCommand(cli.VersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
