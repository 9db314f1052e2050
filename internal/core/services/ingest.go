package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driving"
	"github.com/custodia-labs/finsight-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService processes uploaded documents: store the original,
// extract text and tables, save the artifact, refresh the group count.
type IngestService struct {
	extractor     driven.Extractor
	rawStore      driven.RawFileStore
	artifactStore driven.ArtifactStore
	groupStore    driven.GroupStore
	groups        *GroupService
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	extractor driven.Extractor,
	rawStore driven.RawFileStore,
	artifactStore driven.ArtifactStore,
	groupStore driven.GroupStore,
	groups *GroupService,
) *IngestService {
	return &IngestService{
		extractor:     extractor,
		rawStore:      rawStore,
		artifactStore: artifactStore,
		groupStore:    groupStore,
		groups:        groups,
	}
}

// IngestFile stores the raw document under group, extracts it, and
// saves the resulting artifact. The group must already exist.
func (s *IngestService) IngestFile(ctx context.Context, group, path string) (*domain.Artifact, error) {
	if s.extractor == nil {
		return nil, domain.ErrNotImplemented
	}
	if _, err := s.groupStore.Get(ctx, group); err != nil {
		return nil, fmt.Errorf("group %s: %w", group, err)
	}

	filename := filepath.Base(path)
	storedPath, err := s.rawStore.Store(ctx, group, filename, path)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", filename, err)
	}

	logger.Debug("extracting %s into group %s", filename, group)
	result, err := s.extractor.Extract(ctx, storedPath)
	if err != nil {
		// The stored original stays for manual inspection.
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}

	artifact := &domain.Artifact{
		Key:              domain.ArtifactKey{Group: group, File: filename},
		GroupName:        group,
		OriginalFilename: filename,
		StoredPath:       storedPath,
		Text:             result.Text,
		Tables:           result.Tables,
	}
	if err := s.artifactStore.Save(ctx, artifact); err != nil {
		return nil, fmt.Errorf("save artifact %s: %w", artifact.Key, err)
	}
	if _, err := s.groups.RecomputeFileCount(ctx, group); err != nil {
		return nil, err
	}
	return artifact, nil
}

// IngestBatch processes several files, isolating per-file failures.
func (s *IngestService) IngestBatch(ctx context.Context, group string, paths []string) (*driving.IngestReport, error) {
	report := &driving.IngestReport{}
	for _, path := range paths {
		artifact, err := s.IngestFile(ctx, group, path)
		if err != nil {
			logger.Warn("ingest %s: %v", path, err)
			report.Failed = append(report.Failed, driving.ItemError{Path: path, Err: err})
			continue
		}
		report.Succeeded = append(report.Succeeded, artifact.Key)
	}
	return report, nil
}

// DeleteFile removes one document: the artifact record and the stored
// raw file.
func (s *IngestService) DeleteFile(ctx context.Context, key domain.ArtifactKey) (bool, error) {
	removed, err := s.artifactStore.Delete(ctx, key)
	if err != nil {
		return false, err
	}
	if _, err := s.rawStore.Delete(ctx, key.Group, key.File); err != nil {
		logger.Warn("delete stored file %s: %v", key, err)
	}
	if removed {
		if _, err := s.groups.RecomputeFileCount(ctx, key.Group); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// ListFiles returns artifact keys, scoped to one group when given.
func (s *IngestService) ListFiles(ctx context.Context, group string) ([]domain.ArtifactKey, error) {
	if group == "" {
		return s.artifactStore.List(ctx)
	}
	return s.artifactStore.ListGroup(ctx, group)
}
