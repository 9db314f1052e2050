package file

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
)

// Ensure GroupStore implements the interface.
var _ driven.GroupStore = (*GroupStore)(nil)

// GroupStore persists the group registry as a single JSON file mapping
// group name to metadata. The whole file is rewritten atomically on
// every mutation; with one registry of modest size that is cheaper than
// per-entry files and keeps the crash story identical to the other
// stores.
type GroupStore struct {
	mu     sync.Mutex
	layout Layout
}

// groupRecord is the per-group on-disk schema.
type groupRecord struct {
	CreatedAt    time.Time `json:"created_at"`
	FileCount    int       `json:"file_count"`
	AutoMigrated bool      `json:"auto_migrated,omitempty"`
}

// NewGroupStore creates a filesystem group store.
func NewGroupStore(layout Layout) *GroupStore {
	return &GroupStore{layout: layout}
}

func (s *GroupStore) read() (map[string]groupRecord, error) {
	registry := make(map[string]groupRecord)
	err := readJSON(s.layout.GroupsFile(), &registry)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return registry, nil
}

// Save stores or updates a group entry.
func (s *GroupStore) Save(_ context.Context, group domain.Group) error {
	if !validName(group.Name) {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	registry, err := s.read()
	if err != nil {
		return err
	}
	registry[group.Name] = groupRecord{
		CreatedAt:    group.CreatedAt,
		FileCount:    group.FileCount,
		AutoMigrated: group.AutoMigrated,
	}
	return writeJSONAtomic(s.layout.GroupsFile(), registry)
}

// Get retrieves a group by name.
func (s *GroupStore) Get(_ context.Context, name string) (*domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	registry, err := s.read()
	if err != nil {
		return nil, err
	}
	rec, ok := registry[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.Group{
		Name:         name,
		CreatedAt:    rec.CreatedAt,
		FileCount:    rec.FileCount,
		AutoMigrated: rec.AutoMigrated,
	}, nil
}

// Delete removes a group entry. Returns false when absent.
func (s *GroupStore) Delete(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	registry, err := s.read()
	if err != nil {
		return false, err
	}
	if _, ok := registry[name]; !ok {
		return false, nil
	}
	delete(registry, name)
	if err := writeJSONAtomic(s.layout.GroupsFile(), registry); err != nil {
		return false, err
	}
	return true, nil
}

// List returns all groups sorted by name.
func (s *GroupStore) List(_ context.Context) ([]domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	registry, err := s.read()
	if err != nil {
		return nil, err
	}
	groups := make([]domain.Group, 0, len(registry))
	for name, rec := range registry {
		groups = append(groups, domain.Group{
			Name:         name,
			CreatedAt:    rec.CreatedAt,
			FileCount:    rec.FileCount,
			AutoMigrated: rec.AutoMigrated,
		})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}
