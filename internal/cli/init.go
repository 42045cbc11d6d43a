package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/casebook/internal/config"
	"github.com/example/casebook/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the casebook database",
		Long:  `Initialize the casebook database (default ~/.casebook/casebook.db) with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetBool("seed")
			out := cmd.OutOrStdout()

			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Fprintf(out, "Initializing casebook database at %s\n", dbPath)

			// Opening the database runs pending migrations
			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}

			fmt.Fprintln(out, "✓ Database initialized successfully")

			if globalConfig != nil {
				if err := writeConfigIfMissing(out, globalConfigPath, globalConfig); err != nil {
					return err
				}
			}

			if seed {
				if err := db.SeedFixtures(database); err != nil {
					return fmt.Errorf("failed to seed fixtures: %w", err)
				}
				fmt.Fprintln(out, "✓ Fixtures loaded")
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  casebook case create 715/2024 --title \"My first case\"")
			fmt.Fprintln(out, "  casebook repair --dry-run")

			return nil
		},
	}
	cmd.Flags().Bool("seed", false, "Load development fixtures")
	return cmd
}

// writeConfigIfMissing saves cfg to path unless a file is already there.
func writeConfigIfMissing(out io.Writer, path string, cfg *config.Config) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Config written to %s\n", path)
	return nil
}
