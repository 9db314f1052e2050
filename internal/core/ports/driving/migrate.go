package driving

import "context"

// MigrationService reclassifies artifacts stored before the group model
// existed. Safe to run repeatedly: a second pass over a migrated store
// does zero additional work.
type MigrationService interface {
	// Run performs one migration pass and reports what happened.
	// A report with zero migrations means nothing needed doing.
	Run(ctx context.Context) (*MigrationReport, error)
}

// MigrationReport summarises one migration pass.
type MigrationReport struct {
	// RunID uniquely identifies this pass in logs and backups.
	RunID string

	// Migrated is how many records were reclassified.
	Migrated int

	// Skipped is how many records were already migrated.
	Skipped int

	// BackupDir is where pre-migration copies were written, empty when
	// nothing was migrated.
	BackupDir string

	// Failures are per-record errors; failed records stay in place
	// for manual inspection.
	Failures []ItemError
}
