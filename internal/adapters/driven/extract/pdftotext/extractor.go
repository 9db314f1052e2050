// Package pdftotext extracts text and tables from PDF documents by
// shelling out to the poppler pdftotext tool.
package pdftotext

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// maxTextChars caps the extracted text kept per document. Financial
// statements past this size are boilerplate-heavy appendices that only
// dilute the context.
const maxTextChars = 10_000

// Extractor wraps pdftotext. Layout mode preserves the column spacing
// the table heuristic depends on.
type Extractor struct {
	runner driven.CommandRunner
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// New creates an extractor using the system pdftotext binary.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates an extractor with a custom command runner.
func NewWithRunner(runner driven.CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Extract runs pdftotext -layout on the document and recovers tables
// from the aligned output.
func (e *Extractor) Extract(ctx context.Context, path string) (*driven.ExtractResult, error) {
	if path == "" {
		return nil, domain.ErrInvalidInput
	}

	output, err := e.runner.Run(ctx, "pdftotext", "-layout", path, "-")
	if err != nil {
		return nil, fmt.Errorf("%w: pdftotext %s: %v", domain.ErrExtractFailed, path, err)
	}

	text := strings.TrimSpace(string(output))
	if text == "" {
		return nil, fmt.Errorf("%w: %s produced no text", domain.ErrExtractFailed, path)
	}

	tables := detectTables(text)
	if len(text) > maxTextChars {
		text = text[:maxTextChars]
	}
	return &driven.ExtractResult{Text: text, Tables: tables}, nil
}

// SupportedExtensions returns the file extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Available reports whether the pdftotext binary can be found.
func Available() bool {
	_, err := exec.LookPath("pdftotext")
	return err == nil
}

// InstallInstructions returns help text for installing pdftotext.
func InstallInstructions() string {
	return `pdftotext is required for PDF extraction but was not found.

Install it with:
  macOS:         brew install poppler
  Debian/Ubuntu: sudo apt install poppler-utils
  Fedora:        sudo dnf install poppler-utils`
}
