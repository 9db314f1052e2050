package cli

import (
	"context"
	"fmt"

	"github.com/custodia-labs/finsight-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finsight-cli/internal/core/services"
)

// stubLLM answers every question with a fixed string.
type stubLLM struct {
	askErr error
}

func (s *stubLLM) Ask(_ context.Context, question, _ string, _ []domain.Message) (string, error) {
	if s.askErr != nil {
		return "", s.askErr
	}
	return "stub answer to: " + question, nil
}

func (s *stubLLM) ModelName() string           { return "stub-model" }
func (s *stubLLM) Ping(_ context.Context) error { return nil }
func (s *stubLLM) Close() error                 { return nil }

// stubPrompts serves fixed prompt bodies.
type stubPrompts struct{}

func (stubPrompts) Load(name string) (string, error) {
	if name == driven.PromptComparisonHint {
		return "Comparing %d companies.", nil
	}
	return "You are a financial analyst assistant.", nil
}

func (stubPrompts) Reload() {}

// stubExtractor returns canned text for any input path.
type stubExtractor struct{}

func (stubExtractor) Extract(_ context.Context, path string) (*driven.ExtractResult, error) {
	return &driven.ExtractResult{Text: "Extracted text of " + path}, nil
}

func (stubExtractor) SupportedExtensions() []string { return []string{".pdf"} }

// stubConfig is a map-backed config store.
type stubConfig struct {
	values map[string]any
}

func newStubConfig() *stubConfig {
	return &stubConfig{values: make(map[string]any)}
}

func (c *stubConfig) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

func (c *stubConfig) GetString(key string) string {
	if v, ok := c.values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (c *stubConfig) GetInt(key string) int {
	if v, ok := c.values[key]; ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return 0
}

func (c *stubConfig) GetBool(key string) bool {
	if v, ok := c.values[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

func (c *stubConfig) GetStringSlice(key string) []string {
	if v, ok := c.values[key]; ok {
		if s, ok := v.([]string); ok {
			return s
		}
	}
	return nil
}

func (c *stubConfig) Set(key string, value any) error {
	c.values[key] = value
	return nil
}

func (c *stubConfig) Save() error { return nil }
func (c *stubConfig) Load() error { return nil }
func (c *stubConfig) Path() string { return "stub-config.toml" }

// testStores exposes the backing stores so tests can seed state
// directly.
type testStores struct {
	artifacts *memory.ArtifactStore
	groups    *memory.GroupStore
	sessions  *memory.SessionStore
	config    *stubConfig
	llm       *stubLLM
}

var currentStores *testStores

// setupTestServices wires real services over in-memory stores and
// returns a cleanup that restores the previous wiring.
func setupTestServices() func() {
	prev := &Services{
		Group:     groupService,
		Ingest:    ingestService,
		Chat:      chatService,
		Session:   sessionService,
		Context:   contextService,
		Migration: migrationService,
		Config:    configStore,
		Workspace: workspace,
	}
	prevStores := currentStores

	artifacts := memory.NewArtifactStore()
	groups := memory.NewGroupStore()
	sessions := memory.NewSessionStore()
	raw := memory.NewRawFileStore()
	config := newStubConfig()
	llm := &stubLLM{}

	groupSvc := services.NewGroupService(groups, artifacts, raw)
	contextSvc := services.NewContextService(artifacts)
	sessionSvc := services.NewSessionService(sessions)
	ingestSvc := services.NewIngestService(stubExtractor{}, raw, artifacts, groups, groupSvc)
	migrationSvc := services.NewMigrationService(artifacts, groups, groupSvc)
	ws := services.NewWorkspace(&domain.Session{ID: "20260101_000000"}, nil)
	chatSvc := services.NewChatService(llm, sessions, stubPrompts{}, contextSvc, ws, 0)

	SetServices(&Services{
		Group:     groupSvc,
		Ingest:    ingestSvc,
		Chat:      chatSvc,
		Session:   sessionSvc,
		Context:   contextSvc,
		Migration: migrationSvc,
		Config:    config,
		Workspace: ws,
	})
	currentStores = &testStores{
		artifacts: artifacts,
		groups:    groups,
		sessions:  sessions,
		config:    config,
		llm:       llm,
	}

	return func() {
		SetServices(prev)
		currentStores = prevStores
		selectClear = false
		contextFull = false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}
}

// seedGroup creates a group with n artifacts named report_<i>.pdf.
func seedGroup(name string, n int) error {
	ctx := context.Background()
	if _, err := groupService.Add(ctx, name); err != nil {
		return err
	}
	for i := 1; i <= n; i++ {
		artifact := &domain.Artifact{
			Key:       domain.ArtifactKey{Group: name, File: fmt.Sprintf("report_%d.pdf", i)},
			GroupName: name,
			Text:      fmt.Sprintf("%s revenue in 2024 was %d million.", name, 100*i),
		}
		if err := currentStores.artifacts.Save(ctx, artifact); err != nil {
			return err
		}
	}
	if _, err := groupService.RecomputeFileCount(ctx, name); err != nil {
		return err
	}
	return nil
}
