package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driving"
	"github.com/custodia-labs/finsight-cli/internal/logger"
)

// Ensure MigrationService implements the interface.
var _ driving.MigrationService = (*MigrationService)(nil)

// keyDelimiter is the separator the pre-group flat layout used between
// the group prefix and the original filename.
const keyDelimiter = "_"

// MigrationService reclassifies flat pre-group records into the
// structured per-group layout. Each record is backed up before its
// original is removed, so a failed pass never loses data, and a second
// pass over a migrated store does nothing.
type MigrationService struct {
	artifactStore driven.ArtifactStore
	groupStore    driven.GroupStore
	groups        *GroupService
	now           func() time.Time
}

// NewMigrationService creates a new migration service.
func NewMigrationService(artifactStore driven.ArtifactStore, groupStore driven.GroupStore, groups *GroupService) *MigrationService {
	return &MigrationService{
		artifactStore: artifactStore,
		groupStore:    groupStore,
		groups:        groups,
		now:           time.Now,
	}
}

// SetClock overrides the service clock. Test helper.
func (s *MigrationService) SetClock(now func() time.Time) { s.now = now }

// Run performs one migration pass.
//
// Every flat record's apparent group is the text before the first
// delimiter. A prefix matching a registered group claims the record for
// that group; anything else lands in the synthetic legacy group. Group
// names containing the delimiter make the prefix match ambiguous, which
// is exactly why the structured layout exists; the flat names being
// migrated here predate it and carry that ambiguity unavoidably.
func (s *MigrationService) Run(ctx context.Context) (*driving.MigrationReport, error) {
	names, err := s.artifactStore.ListLegacy(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing legacy records: %w", err)
	}

	report := &driving.MigrationReport{RunID: uuid.NewString()}
	if len(names) == 0 {
		return report, nil
	}

	tag := "migration-" + s.now().Format("20060102")
	touched := make(map[string]bool)
	for _, name := range names {
		group, migrated, err := s.migrateRecord(ctx, name, tag, report)
		if err != nil {
			logger.Warn("migration %s: record %s: %v", report.RunID, name, err)
			report.Failures = append(report.Failures, driving.ItemError{Path: name, Err: err})
			continue
		}
		if migrated {
			report.Migrated++
			touched[group] = true
		} else {
			report.Skipped++
		}
	}

	for group := range touched {
		if _, err := s.groups.RecomputeFileCount(ctx, group); err != nil {
			logger.Warn("migration %s: recount %s: %v", report.RunID, group, err)
		}
	}

	logger.Info("migration %s: %d migrated, %d skipped, %d failed",
		report.RunID, report.Migrated, report.Skipped, len(report.Failures))
	return report, nil
}

// migrateRecord moves one flat record into the structured layout,
// reporting the target group and whether it actually moved. The order
// is backup, save, delete: the original stays put until its replacement
// and its backup both exist.
func (s *MigrationService) migrateRecord(ctx context.Context, name, tag string, report *driving.MigrationReport) (string, bool, error) {
	artifact, err := s.artifactStore.LoadLegacy(ctx, name)
	if err != nil {
		return "", false, fmt.Errorf("load: %w", err)
	}
	if artifact.GroupName == domain.LegacyGroupName {
		return "", false, nil
	}

	group, file := s.classify(ctx, name, artifact)
	if group == domain.LegacyGroupName {
		if err := s.ensureLegacyGroup(ctx); err != nil {
			return "", false, err
		}
	}

	backupDir, err := s.artifactStore.BackupLegacy(ctx, name, tag)
	if err != nil {
		return "", false, fmt.Errorf("backup: %w", err)
	}
	report.BackupDir = backupDir

	artifact.Key = domain.ArtifactKey{Group: group, File: file}
	artifact.GroupName = group
	artifact.OriginalFilename = file
	artifact.MigratedFromLegacy = true
	if err := s.artifactStore.Save(ctx, artifact); err != nil {
		return "", false, fmt.Errorf("save: %w", err)
	}

	if _, err := s.artifactStore.DeleteLegacy(ctx, name); err != nil {
		return "", false, fmt.Errorf("delete original: %w", err)
	}
	return group, true, nil
}

// classify derives the target (group, file) for a flat record name.
func (s *MigrationService) classify(ctx context.Context, name string, artifact *domain.Artifact) (string, string) {
	base := strings.TrimSuffix(name, ".json")
	if idx := strings.Index(base, keyDelimiter); idx > 0 {
		prefix, rest := base[:idx], base[idx+1:]
		if rest != "" {
			if _, err := s.groupStore.Get(ctx, prefix); err == nil {
				return prefix, rest
			}
		}
	}
	// The record's own group field can still rescue it when the name
	// carries no usable prefix.
	if artifact.GroupName != "" {
		if _, err := s.groupStore.Get(ctx, artifact.GroupName); err == nil {
			return artifact.GroupName, base
		}
	}
	return domain.LegacyGroupName, base
}

func (s *MigrationService) ensureLegacyGroup(ctx context.Context) error {
	_, err := s.groupStore.Get(ctx, domain.LegacyGroupName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	err = s.groupStore.Save(ctx, domain.Group{
		Name:         domain.LegacyGroupName,
		CreatedAt:    s.now(),
		AutoMigrated: true,
	})
	if err != nil {
		return fmt.Errorf("create %s group: %w", domain.LegacyGroupName, err)
	}
	return nil
}
