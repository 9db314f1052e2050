// Command finsight answers questions about uploaded financial
// statements, grounded in the extracted document text.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	configfile "github.com/custodia-labs/finsight-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/finsight-cli/internal/adapters/driven/extract/pdftotext"
	"github.com/custodia-labs/finsight-cli/internal/adapters/driven/llm/anthropic"
	storagefile "github.com/custodia-labs/finsight-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/finsight-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finsight-cli/internal/core/services"
	"github.com/custodia-labs/finsight-cli/internal/logger"
	"github.com/custodia-labs/finsight-cli/internal/watcher"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	promptStore, err := configfile.NewPromptStore(filepath.Join(filepath.Dir(configStore.Path()), "prompts"))
	if err != nil {
		return fmt.Errorf("opening prompts: %w", err)
	}

	layout, err := storagefile.NewLayout(configStore.GetString(driven.ConfigKeyDataDir))
	if err != nil {
		return fmt.Errorf("resolving data directory: %w", err)
	}
	artifactStore := storagefile.NewArtifactStore(layout)
	groupStore := storagefile.NewGroupStore(layout)
	rawStore := storagefile.NewRawFileStore(layout)
	sessionStore := storagefile.NewSessionStore(layout)

	groupSvc := services.NewGroupService(groupStore, artifactStore, rawStore)
	contextSvc := services.NewContextService(artifactStore)
	sessionSvc := services.NewSessionService(sessionStore)
	ingestSvc := services.NewIngestService(pdftotext.New(), rawStore, artifactStore, groupStore, groupSvc)
	migrationSvc := services.NewMigrationService(artifactStore, groupStore, groupSvc)

	workspace, err := buildWorkspace(ctx, sessionSvc, configStore)
	if err != nil {
		return err
	}

	// The interface must stay nil when no client exists; a typed nil
	// pointer would make Ready report true.
	var llm driven.LLMService
	if svc := buildLLM(configStore, promptStore); svc != nil {
		llm = svc
		defer svc.Close() //nolint:errcheck
	}
	chatSvc := services.NewChatService(llm, sessionStore, promptStore, contextSvc, workspace,
		configStore.GetInt(driven.ConfigKeyTokenBudget))
	if _, ok := configStore.Get(driven.ConfigKeyYearFilter); ok {
		chatSvc.SetYearFilter(configStore.GetBool(driven.ConfigKeyYearFilter))
	}

	// Invalidate the cached context when another process (or a manual
	// edit) changes the artifact files on disk.
	w, err := watcher.New(layout.ArtifactsDir(), workspace.InvalidateContext)
	if err != nil {
		logger.Warn("artifact watcher unavailable: %v", err)
	} else {
		if err := w.Start(ctx); err != nil {
			logger.Warn("artifact watcher failed to start: %v", err)
		} else {
			defer w.Close() //nolint:errcheck
		}
	}

	cli.SetVersion(version)
	cli.SetServices(&cli.Services{
		Group:     groupSvc,
		Ingest:    ingestSvc,
		Chat:      chatSvc,
		Session:   sessionSvc,
		Context:   contextSvc,
		Migration: migrationSvc,
		Config:    configStore,
		Workspace: workspace,
	})
	return cli.Execute()
}

// buildWorkspace restores the persisted session pointer and group
// selection into a fresh workspace.
func buildWorkspace(ctx context.Context, sessions *services.SessionService, configStore driven.ConfigStore) (*services.Workspace, error) {
	var session *domain.Session
	var err error
	if id := configStore.GetString(driven.ConfigKeyCurrentSession); id != "" {
		session, err = sessions.Resume(ctx, id)
	} else {
		session, err = sessions.Recover(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	return services.NewWorkspace(session, configStore.GetStringSlice(driven.ConfigKeySelectedGroups)), nil
}

// buildLLM constructs the Anthropic client when an API key is
// configured. Without one every store operation still works; only
// asking questions is disabled.
func buildLLM(configStore driven.ConfigStore, prompts driven.PromptStore) *anthropic.LLMService {
	apiKey := configStore.GetString(driven.ConfigKeyAPIKey)
	if apiKey == "" {
		return nil
	}

	svc, err := anthropic.NewLLMService(anthropic.Config{
		APIKey: apiKey,
		Model:  configStore.GetString(driven.ConfigKeyModel),
	})
	if err != nil {
		logger.Warn("model client unavailable: %v", err)
		return nil
	}
	svc.SetPromptStore(prompts)
	return svc
}
