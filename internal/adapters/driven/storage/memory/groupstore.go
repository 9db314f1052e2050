package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
)

// Ensure GroupStore implements the interface.
var _ driven.GroupStore = (*GroupStore)(nil)

// GroupStore is an in-memory implementation of driven.GroupStore.
type GroupStore struct {
	mu     sync.RWMutex
	groups map[string]domain.Group
}

// NewGroupStore creates a new in-memory group store.
func NewGroupStore() *GroupStore {
	return &GroupStore{groups: make(map[string]domain.Group)}
}

// Save stores or updates a group entry.
func (s *GroupStore) Save(_ context.Context, group domain.Group) error {
	if group.Name == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[group.Name] = group
	return nil
}

// Get retrieves a group by name.
func (s *GroupStore) Get(_ context.Context, name string) (*domain.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &g, nil
}

// Delete removes a group entry. Returns false when absent.
func (s *GroupStore) Delete(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[name]; !ok {
		return false, nil
	}
	delete(s.groups, name)
	return true, nil
}

// List returns all groups sorted by name.
func (s *GroupStore) List(_ context.Context) ([]domain.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make([]domain.Group, 0, len(s.groups))
	for name := range s.groups {
		groups = append(groups, s.groups[name])
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}
