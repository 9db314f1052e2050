package domain

import (
	"fmt"
	"time"
)

// ArtifactSchemaVersion is the current on-disk record schema version.
// Bump when a field changes meaning; optional fields may be added freely.
const ArtifactSchemaVersion = 2

// ArtifactKey identifies an artifact by its owning group and the original
// file name of the uploaded document. The pair is the primary key; the
// concatenated "group_file" form exists only for display and for decoding
// records written by the legacy flat layout, where the group name was a
// string prefix of the file name.
type ArtifactKey struct {
	// Group is the owning group name.
	Group string

	// File is the original file name of the uploaded document.
	File string
}

// String returns the human-readable "group_file" form.
func (k ArtifactKey) String() string {
	return fmt.Sprintf("%s_%s", k.Group, k.File)
}

// IsZero reports whether the key has no group and no file.
func (k ArtifactKey) IsZero() bool {
	return k.Group == "" && k.File == ""
}

// Less orders keys by (group, file). Store listings use this ordering,
// which makes context assembly deterministic for a fixed store state.
func (k ArtifactKey) Less(other ArtifactKey) bool {
	if k.Group != other.Group {
		return k.Group < other.Group
	}
	return k.File < other.File
}

// Artifact is the extracted representation of one uploaded document:
// full text plus any tables recovered from it. Artifacts are stored
// independently of the original file.
type Artifact struct {
	// Key identifies the artifact.
	Key ArtifactKey

	// GroupName duplicates Key.Group inside the record so that a record
	// read without its key (legacy flat files) still knows its owner.
	GroupName string

	// OriginalFilename is the uploaded document's file name.
	OriginalFilename string

	// StoredPath is the location of the raw uploaded document.
	// Exclusively referenced by this artifact; removed with it.
	StoredPath string

	// Text is the full extracted text, UTF-8.
	Text string

	// Tables are the tables recovered from the document, in page order.
	Tables []Table

	// ExtractedAt is when extraction completed. Stamped on save.
	ExtractedAt time.Time

	// SchemaVersion is the record schema version this artifact was
	// written with. Zero means a pre-versioning legacy record.
	SchemaVersion int

	// MigratedFromLegacy marks artifacts reclassified by the migrator.
	MigratedFromLegacy bool
}

// Table is one table extracted from a document page.
type Table struct {
	// Page is the 1-based page number the table was found on.
	Page int

	// Index is the 1-based position of the table within its page.
	Index int

	// Headers are the column headers. Blank cells are given
	// positional names during extraction.
	Headers []string

	// Rows are the data rows, each with len(Headers) cells.
	Rows [][]string
}
