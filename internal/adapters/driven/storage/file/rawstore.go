package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
)

// Ensure RawFileStore implements the interface.
var _ driven.RawFileStore = (*RawFileStore)(nil)

// RawFileStore keeps the original uploaded documents under
// <data>/raw/<group>/<filename>, addressable by (group, filename).
type RawFileStore struct {
	layout Layout
}

// NewRawFileStore creates a filesystem raw file store.
func NewRawFileStore(layout Layout) *RawFileStore {
	return &RawFileStore{layout: layout}
}

// Path returns the stored path for (group, filename).
func (s *RawFileStore) Path(group, filename string) string {
	return filepath.Join(s.layout.RawDir(), group, filename)
}

// Store copies the file at srcPath under (group, filename).
func (s *RawFileStore) Store(_ context.Context, group, filename, srcPath string) (string, error) {
	if !validName(group) || !validName(filename) {
		return "", domain.ErrInvalidInput
	}
	dst := s.Path(group, filename)
	if err := os.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
		return "", fmt.Errorf("create group dir: %w", err)
	}
	if err := copyFile(srcPath, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Move relocates a stored file between groups. Missing source is not
// an error: the artifact may have been ingested without its original.
func (s *RawFileStore) Move(_ context.Context, fromGroup, toGroup, filename string) (string, error) {
	if !validName(toGroup) || !validName(filename) {
		return "", domain.ErrInvalidInput
	}
	src := s.Path(fromGroup, filename)
	dst := s.Path(toGroup, filename)

	if _, err := os.Stat(src); os.IsNotExist(err) {
		return dst, nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
		return "", fmt.Errorf("create group dir: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("move %s: %w", filename, err)
	}
	// Best effort cleanup of the emptied source directory.
	_ = os.Remove(filepath.Dir(src))
	return dst, nil
}

// Delete removes a stored file. Returns false when absent.
func (s *RawFileStore) Delete(_ context.Context, group, filename string) (bool, error) {
	if !validName(group) || !validName(filename) {
		return false, nil
	}
	err := os.Remove(s.Path(group, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete %s: %w", filename, err)
	}
	return true, nil
}

// RemoveGroup removes a group's raw storage directory and anything
// still in it.
func (s *RawFileStore) RemoveGroup(_ context.Context, group string) error {
	if !validName(group) {
		return nil
	}
	if err := os.RemoveAll(filepath.Join(s.layout.RawDir(), group)); err != nil {
		return fmt.Errorf("remove raw dir for %s: %w", group, err)
	}
	return nil
}

// copyFile copies src to dst, truncating any existing dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(src), err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(dst), err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	return out.Close()
}
