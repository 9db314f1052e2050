package driven

import (
	"context"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

// GroupStore persists the group registry.
type GroupStore interface {
	// Save stores or updates a group entry.
	Save(ctx context.Context, group domain.Group) error

	// Get retrieves a group by name.
	// Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, name string) (*domain.Group, error)

	// Delete removes a group entry. Returns false when absent.
	Delete(ctx context.Context, name string) (bool, error)

	// List returns all groups sorted by name.
	List(ctx context.Context) ([]domain.Group, error)
}
