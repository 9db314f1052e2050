package mcp

import (
	"context"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driving"
)

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	result *driving.AskResult
	err    error
	ready  bool

	lastQuestion string
}

func (m *mockChatService) Ask(_ context.Context, question string) (*driving.AskResult, error) {
	m.lastQuestion = question
	return m.result, m.err
}

func (m *mockChatService) Ready() bool {
	return m.ready
}

// mockGroupService is a mock implementation of driving.GroupService.
type mockGroupService struct {
	groups []domain.Group
	err    error
}

func (m *mockGroupService) Add(_ context.Context, _ string) (bool, error) {
	return false, m.err
}

func (m *mockGroupService) Rename(_ context.Context, _, _ string) (bool, error) {
	return false, m.err
}

func (m *mockGroupService) Remove(_ context.Context, _ string) (*driving.RemoveReport, error) {
	return nil, m.err
}

func (m *mockGroupService) List(_ context.Context) ([]domain.Group, error) {
	return m.groups, m.err
}

func (m *mockGroupService) RecomputeFileCount(_ context.Context, _ string) (int, error) {
	return 0, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	keys []domain.ArtifactKey
	err  error

	lastGroup string
}

func (m *mockIngestService) IngestFile(_ context.Context, _, _ string) (*domain.Artifact, error) {
	return nil, m.err
}

func (m *mockIngestService) IngestBatch(_ context.Context, _ string, _ []string) (*driving.IngestReport, error) {
	return nil, m.err
}

func (m *mockIngestService) DeleteFile(_ context.Context, _ domain.ArtifactKey) (bool, error) {
	return false, m.err
}

func (m *mockIngestService) ListFiles(_ context.Context, group string) ([]domain.ArtifactKey, error) {
	m.lastGroup = group
	if m.err != nil {
		return nil, m.err
	}
	if group == "" {
		return m.keys, nil
	}
	var scoped []domain.ArtifactKey
	for _, key := range m.keys {
		if key.Group == group {
			scoped = append(scoped, key)
		}
	}
	return scoped, nil
}
