package driven

import (
	"context"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

// Extractor turns an uploaded document into text and tables.
// Implementations wrap an external tool or library; unreadable input
// must surface as domain.ErrExtractFailed so batch ingest can isolate
// the failure and continue.
type Extractor interface {
	// Extract processes the document at path.
	Extract(ctx context.Context, path string) (*ExtractResult, error)

	// SupportedExtensions returns the file extensions this extractor
	// handles, lowercase with leading dot (e.g. ".pdf").
	SupportedExtensions() []string
}

// ExtractResult is the output of document extraction.
type ExtractResult struct {
	// Text is the full extracted text.
	Text string

	// Tables are the tables recovered from the document, in page order.
	Tables []domain.Table
}

// CommandRunner executes an external command and returns its combined
// output. Extractors that shell out take one of these so tests can
// substitute a double.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
