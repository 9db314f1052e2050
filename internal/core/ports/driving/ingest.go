package driving

import (
	"context"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

// IngestService processes uploaded documents into stored artifacts.
type IngestService interface {
	// IngestFile stores the raw document under group, extracts it, and
	// saves the resulting artifact. The group must already exist.
	IngestFile(ctx context.Context, group, path string) (*domain.Artifact, error)

	// IngestBatch processes several files, isolating per-file failures.
	// A bad file never aborts the batch.
	IngestBatch(ctx context.Context, group string, paths []string) (*IngestReport, error)

	// DeleteFile removes one document: the artifact record and the
	// stored raw file. Returns false when no artifact existed.
	DeleteFile(ctx context.Context, key domain.ArtifactKey) (bool, error)

	// ListFiles returns artifact keys, sorted by (group, file). An
	// empty group lists every artifact.
	ListFiles(ctx context.Context, group string) ([]domain.ArtifactKey, error)
}

// IngestReport summarises a batch ingest.
type IngestReport struct {
	// Succeeded are the keys of successfully ingested artifacts.
	Succeeded []domain.ArtifactKey

	// Failed are the per-file failures, in input order.
	Failed []ItemError
}

// ItemError pairs a failed input file with its error.
type ItemError struct {
	// Path is the input file that failed.
	Path string

	// Err is the failure cause.
	Err error
}
