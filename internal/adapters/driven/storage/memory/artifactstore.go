// Package memory provides in-memory implementations of the storage
// ports. Used by tests and as a zero-setup backend for throwaway runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is an in-memory implementation of driven.ArtifactStore.
type ArtifactStore struct {
	mu        sync.RWMutex
	artifacts map[domain.ArtifactKey]domain.Artifact
	legacy    map[string]domain.Artifact
	backups   map[string]domain.Artifact
}

// NewArtifactStore creates a new in-memory artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{
		artifacts: make(map[domain.ArtifactKey]domain.Artifact),
		legacy:    make(map[string]domain.Artifact),
		backups:   make(map[string]domain.Artifact),
	}
}

// Save stores or overwrites an artifact, stamping ExtractedAt.
func (s *ArtifactStore) Save(_ context.Context, artifact *domain.Artifact) error {
	if artifact == nil || artifact.Key.IsZero() {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := *artifact
	a.ExtractedAt = time.Now()
	a.SchemaVersion = domain.ArtifactSchemaVersion
	s.artifacts[a.Key] = a
	return nil
}

// Load retrieves an artifact by key.
func (s *ArtifactStore) Load(_ context.Context, key domain.ArtifactKey) (*domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.artifacts[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

// List returns every artifact key sorted by (group, file).
func (s *ArtifactStore) List(_ context.Context) ([]domain.ArtifactKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]domain.ArtifactKey, 0, len(s.artifacts))
	for k := range s.artifacts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys, nil
}

// ListGroup returns the keys owned by one group, sorted by file.
func (s *ArtifactStore) ListGroup(_ context.Context, group string) ([]domain.ArtifactKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []domain.ArtifactKey
	for k := range s.artifacts {
		if k.Group == group {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys, nil
}

// Delete removes an artifact. Returns false when the key was absent.
func (s *ArtifactStore) Delete(_ context.Context, key domain.ArtifactKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.artifacts[key]; !ok {
		return false, nil
	}
	delete(s.artifacts, key)
	return true, nil
}

// ListLegacy returns the names of flat pre-group records.
func (s *ArtifactStore) ListLegacy(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.legacy))
	for name := range s.legacy {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// LoadLegacy reads a flat legacy record by name.
func (s *ArtifactStore) LoadLegacy(_ context.Context, name string) (*domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.legacy[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

// DeleteLegacy removes a flat legacy record.
func (s *ArtifactStore) DeleteLegacy(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.legacy[name]; !ok {
		return false, nil
	}
	delete(s.legacy, name)
	return true, nil
}

// BackupLegacy copies a flat legacy record into the in-memory backup
// area keyed by "<tag>/<name>".
func (s *ArtifactStore) BackupLegacy(_ context.Context, name, tag string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.legacy[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	s.backups[tag+"/"+name] = a
	return tag, nil
}

// Backup returns a backed-up legacy record by "<tag>/<name>". Test
// helper for asserting on migrator backups.
func (s *ArtifactStore) Backup(tag, name string) (domain.Artifact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.backups[tag+"/"+name]
	return a, ok
}

// SeedLegacy inserts a flat legacy record directly. Test helper for
// exercising the migrator; the file adapter gets these from disk.
func (s *ArtifactStore) SeedLegacy(name string, artifact domain.Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.legacy[name] = artifact
}
