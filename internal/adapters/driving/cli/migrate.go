package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate flat legacy artifacts into groups",
	Long: `Reclassifies artifacts stored before groups existed.

Each flat record is assigned to a group by its file name prefix, its
recorded group field, or the synthetic "legacy" group, in that order of
preference. Records are backed up before they move. Running migrate on
an already-migrated store does nothing.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if migrationService == nil {
		return errors.New("migration service not configured")
	}

	ctx := context.Background()

	report, err := migrationService.Run(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if report.Migrated == 0 && report.Skipped == 0 && len(report.Failures) == 0 {
		cmd.Println("Nothing to migrate.")
		return nil
	}

	cmd.Printf("Migrated %d records, skipped %d already-migrated.\n", report.Migrated, report.Skipped)
	if report.BackupDir != "" {
		cmd.Printf("Backups: %s\n", report.BackupDir)
	}
	for _, f := range report.Failures {
		cmd.Printf("  failed  %s: %v\n", f.Path, f.Err)
	}

	if workspace != nil && report.Migrated > 0 {
		workspace.InvalidateContext()
	}
	if len(report.Failures) > 0 {
		return fmt.Errorf("%d records failed to migrate", len(report.Failures))
	}
	return nil
}
