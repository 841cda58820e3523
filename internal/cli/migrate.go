package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/preptrack/internal/adapters/turso"
	"github.com/emiliopalmerini/preptrack/internal/infrastructure/config"
	"github.com/emiliopalmerini/preptrack/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Run database migrations.

Without arguments, runs all pending migrations.
With a version number, rolls back to that version.

Examples:
  preptrack migrate      # Run all pending migrations
  preptrack migrate 0    # Roll back all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := turso.NewDB(*cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if len(args) == 0 {
		applied, err := migrate.Up(ctx, db)
		if err != nil {
			return err
		}
		if applied == 0 {
			fmt.Println("No migrations to run")
		} else {
			fmt.Printf("%d migrations applied\n", applied)
		}
		return nil
	}

	target, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid version number: %s", args[0])
	}
	if err := migrate.DownTo(ctx, db, target); err != nil {
		return err
	}
	fmt.Printf("Migrated down to version %d\n", target)
	return nil
}
