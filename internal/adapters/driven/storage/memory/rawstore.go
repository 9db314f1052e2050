package memory

import (
	"context"
	"path"
	"sync"

	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
)

// Ensure RawFileStore implements the interface.
var _ driven.RawFileStore = (*RawFileStore)(nil)

// RawFileStore is an in-memory implementation of driven.RawFileStore.
// It tracks stored paths without touching the filesystem.
type RawFileStore struct {
	mu    sync.RWMutex
	files map[string]string // virtual path -> source path
}

// NewRawFileStore creates a new in-memory raw file store.
func NewRawFileStore() *RawFileStore {
	return &RawFileStore{files: make(map[string]string)}
}

// Store records the file under (group, filename).
func (s *RawFileStore) Store(_ context.Context, group, filename, srcPath string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.Path(group, filename)
	s.files[p] = srcPath
	return p, nil
}

// Path returns the virtual stored path for (group, filename).
func (s *RawFileStore) Path(group, filename string) string {
	return path.Join("raw", group, filename)
}

// Move relocates a stored file between groups.
func (s *RawFileStore) Move(_ context.Context, fromGroup, toGroup, filename string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	oldPath := s.Path(fromGroup, filename)
	newPath := s.Path(toGroup, filename)
	src, ok := s.files[oldPath]
	if !ok {
		// Nothing stored; the artifact was ingested without its original.
		return newPath, nil
	}
	delete(s.files, oldPath)
	s.files[newPath] = src
	return newPath, nil
}

// Delete removes a stored file. Returns false when absent.
func (s *RawFileStore) Delete(_ context.Context, group, filename string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.Path(group, filename)
	if _, ok := s.files[p]; !ok {
		return false, nil
	}
	delete(s.files, p)
	return true, nil
}

// RemoveGroup is a no-op for the in-memory store.
func (s *RawFileStore) RemoveGroup(_ context.Context, _ string) error {
	return nil
}

// Exists reports whether a file is stored under (group, filename).
// Test helper.
func (s *RawFileStore) Exists(group, filename string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[s.Path(group, filename)]
	return ok
}
