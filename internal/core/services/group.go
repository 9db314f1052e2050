package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driving"
	"github.com/custodia-labs/finsight-cli/internal/logger"
)

// Ensure GroupService implements the interface.
var _ driving.GroupService = (*GroupService)(nil)

// GroupService manages the registry of document groups and keeps the
// artifact store consistent with it.
type GroupService struct {
	groupStore    driven.GroupStore
	artifactStore driven.ArtifactStore
	rawStore      driven.RawFileStore

	// now is swappable so tests can pin CreatedAt.
	now func() time.Time
}

// NewGroupService creates a new group service.
func NewGroupService(
	groupStore driven.GroupStore,
	artifactStore driven.ArtifactStore,
	rawStore driven.RawFileStore,
) *GroupService {
	return &GroupService{
		groupStore:    groupStore,
		artifactStore: artifactStore,
		rawStore:      rawStore,
		now:           time.Now,
	}
}

// SetClock overrides the service clock. Test helper.
func (s *GroupService) SetClock(now func() time.Time) { s.now = now }

// Add creates a new group. Returns false when the name is taken.
func (s *GroupService) Add(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, domain.ErrInvalidInput
	}
	if _, err := s.groupStore.Get(ctx, name); err == nil {
		return false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}
	err := s.groupStore.Save(ctx, domain.Group{
		Name:      name,
		CreatedAt: s.now(),
		FileCount: 0,
	})
	if err != nil {
		return false, fmt.Errorf("add group %s: %w", name, err)
	}
	return true, nil
}

// Rename changes a group's name, cascading to every owned artifact and
// its stored file.
//
// The cascade is a sequence of idempotent per-artifact steps: save the
// record under the new key, relocate the raw file, then delete the old
// record. A crash mid-rename leaves each artifact at the old key (not
// yet processed) or at the new key (done) or briefly at both with
// identical content; re-running the rename converges. No artifact is
// ever lost.
func (s *GroupService) Rename(ctx context.Context, oldName, newName string) (bool, error) {
	if oldName == "" || newName == "" || oldName == newName {
		return false, domain.ErrInvalidInput
	}

	old, err := s.groupStore.Get(ctx, oldName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if _, err := s.groupStore.Get(ctx, newName); err == nil {
		return false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	// Register the new name first so a crash mid-cascade leaves both
	// names visible and the artifacts recoverable under either.
	err = s.groupStore.Save(ctx, domain.Group{
		Name:         newName,
		CreatedAt:    old.CreatedAt,
		FileCount:    old.FileCount,
		AutoMigrated: old.AutoMigrated,
	})
	if err != nil {
		return false, fmt.Errorf("rename group %s: %w", oldName, err)
	}

	keys, err := s.artifactStore.ListGroup(ctx, oldName)
	if err != nil {
		return false, err
	}
	for _, key := range keys {
		if err := s.renameArtifact(ctx, key, newName); err != nil {
			return false, fmt.Errorf("rename artifact %s: %w", key, err)
		}
	}

	if _, err := s.groupStore.Delete(ctx, oldName); err != nil {
		return false, err
	}
	if _, err := s.RecomputeFileCount(ctx, newName); err != nil {
		return false, err
	}
	return true, nil
}

func (s *GroupService) renameArtifact(ctx context.Context, key domain.ArtifactKey, newGroup string) error {
	artifact, err := s.artifactStore.Load(ctx, key)
	if err != nil {
		return err
	}

	storedPath, err := s.rawStore.Move(ctx, key.Group, newGroup, key.File)
	if err != nil {
		return err
	}

	artifact.Key = domain.ArtifactKey{Group: newGroup, File: key.File}
	artifact.GroupName = newGroup
	artifact.StoredPath = storedPath
	if err := s.artifactStore.Save(ctx, artifact); err != nil {
		return err
	}

	// Only after the new record is committed does the old one go.
	_, err = s.artifactStore.Delete(ctx, key)
	return err
}

// Remove deletes a group and cascades deletion of every owned artifact
// and stored file. Per-item failures become warnings, never aborts.
func (s *GroupService) Remove(ctx context.Context, name string) (*driving.RemoveReport, error) {
	if _, err := s.groupStore.Get(ctx, name); err != nil {
		return nil, err
	}

	report := &driving.RemoveReport{}
	keys, err := s.artifactStore.ListGroup(ctx, name)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		if removed, err := s.rawStore.Delete(ctx, key.Group, key.File); err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("stored file %s: %v", key, err))
		} else if removed {
			report.FilesRemoved++
		}

		if removed, err := s.artifactStore.Delete(ctx, key); err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("artifact %s: %v", key, err))
		} else if removed {
			report.ArtifactsRemoved++
		}
	}

	if err := s.rawStore.RemoveGroup(ctx, name); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("raw directory %s: %v", name, err))
	}
	if _, err := s.groupStore.Delete(ctx, name); err != nil {
		return report, fmt.Errorf("remove group %s: %w", name, err)
	}

	for _, warning := range report.Warnings {
		logger.Warn("remove %s: %s", name, warning)
	}
	return report, nil
}

// List returns all groups sorted by name.
func (s *GroupService) List(ctx context.Context) ([]domain.Group, error) {
	return s.groupStore.List(ctx)
}

// RecomputeFileCount refreshes a group's cached artifact count from the
// authoritative store listing. The cache may transiently disagree with
// the true count between a membership mutation and this call; it is
// never treated as authoritative.
func (s *GroupService) RecomputeFileCount(ctx context.Context, name string) (int, error) {
	group, err := s.groupStore.Get(ctx, name)
	if err != nil {
		return 0, err
	}
	keys, err := s.artifactStore.ListGroup(ctx, name)
	if err != nil {
		return 0, err
	}
	group.FileCount = len(keys)
	if err := s.groupStore.Save(ctx, *group); err != nil {
		return 0, err
	}
	return group.FileCount, nil
}
