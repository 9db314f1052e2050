package driving

import (
	"context"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

// GroupService manages the registry of document groups.
type GroupService interface {
	// Add creates a new group. Returns false with a nil error when the
	// name is already taken; conflicts are expected, not exceptional.
	Add(ctx context.Context, name string) (bool, error)

	// Rename changes a group's name, cascading to every owned artifact
	// and its stored file. Returns false when old is absent or new is
	// already present.
	Rename(ctx context.Context, oldName, newName string) (bool, error)

	// Remove deletes a group and cascades deletion of every owned
	// artifact and stored file. Per-item failures do not block the
	// remaining deletions; they come back as warnings.
	Remove(ctx context.Context, name string) (*RemoveReport, error)

	// List returns all groups sorted by name.
	List(ctx context.Context) ([]domain.Group, error)

	// RecomputeFileCount refreshes a group's cached artifact count
	// from the authoritative store listing.
	RecomputeFileCount(ctx context.Context, name string) (int, error)
}

// RemoveReport summarises a cascading group deletion.
type RemoveReport struct {
	// ArtifactsRemoved is how many artifact records were deleted.
	ArtifactsRemoved int

	// FilesRemoved is how many stored files were deleted.
	FilesRemoved int

	// Warnings are per-item failures that did not block the removal.
	Warnings []string
}
