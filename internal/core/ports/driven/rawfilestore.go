package driven

import "context"

// RawFileStore persists the original uploaded documents, addressable
// by (group, file name). Extracted artifacts reference these paths.
type RawFileStore interface {
	// Store copies the file at srcPath under (group, filename) and
	// returns the stored path.
	Store(ctx context.Context, group, filename, srcPath string) (string, error)

	// Path returns the stored path for (group, filename) without
	// touching the filesystem.
	Path(group, filename string) string

	// Move relocates a stored file between groups, returning the new
	// path. Moving a file that does not exist is not an error: the
	// artifact may have been ingested without its original.
	Move(ctx context.Context, fromGroup, toGroup, filename string) (string, error)

	// Delete removes a stored file. Returns false when absent.
	Delete(ctx context.Context, group, filename string) (bool, error)

	// RemoveGroup removes a group's storage directory once emptied.
	RemoveGroup(ctx context.Context, group string) error
}
