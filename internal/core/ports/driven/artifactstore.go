package driven

import (
	"context"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

// ArtifactStore persists extracted documents as individually addressable
// records. Implementations must make every save atomic at single-record
// granularity: a reader never observes a partial write.
type ArtifactStore interface {
	// Save stores or overwrites an artifact, stamping ExtractedAt.
	Save(ctx context.Context, artifact *domain.Artifact) error

	// Load retrieves an artifact by key.
	// Returns domain.ErrNotFound when absent.
	Load(ctx context.Context, key domain.ArtifactKey) (*domain.Artifact, error)

	// List returns every artifact key, sorted by (group, file).
	// The listing is recomputed on every call; it always reflects
	// committed on-disk state.
	List(ctx context.Context) ([]domain.ArtifactKey, error)

	// ListGroup returns the keys owned by one group, sorted by file.
	ListGroup(ctx context.Context, group string) ([]domain.ArtifactKey, error)

	// Delete removes an artifact. Returns false when the key was
	// absent; absence is never an error.
	Delete(ctx context.Context, key domain.ArtifactKey) (bool, error)

	// ListLegacy returns the names of flat records left behind by the
	// pre-group storage layout. Input to the legacy migrator.
	ListLegacy(ctx context.Context) ([]string, error)

	// LoadLegacy reads a flat legacy record by its file name.
	LoadLegacy(ctx context.Context, name string) (*domain.Artifact, error)

	// DeleteLegacy removes a flat legacy record after migration.
	DeleteLegacy(ctx context.Context, name string) (bool, error)

	// BackupLegacy copies a flat legacy record into the backup area
	// under tag, returning the backup location. The original record is
	// untouched; migration deletes it only after this succeeds.
	BackupLegacy(ctx context.Context, name, tag string) (string, error)
}
