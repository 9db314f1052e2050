package domain

import "time"

// LegacyGroupName is the synthetic group that receives artifacts
// predating the group model.
const LegacyGroupName = "legacy"

// Group is a named collection of related documents and their artifacts.
// In the UI these are presented as companies.
type Group struct {
	// Name is the unique group name; it acts as the primary key.
	Name string

	// CreatedAt is when the group was created.
	CreatedAt time.Time

	// FileCount is a cached count of owned artifacts. It is derived,
	// never authoritative: the true count is the number of artifacts
	// whose key carries this group. Recomputed after every membership
	// mutation, so it may transiently disagree in between.
	FileCount int

	// AutoMigrated marks groups created implicitly by the migrator.
	AutoMigrated bool
}
