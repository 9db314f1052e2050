// Package cli implements the cobra command tree for the finsight binary.
//
// Commands hold no business logic: each one validates its arguments,
// calls a driving port, and formats the result. Services are injected
// through SetServices before Execute runs; a command invoked without
// its service configured fails with a plain error instead of panicking.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driving"
	"github.com/custodia-labs/finsight-cli/internal/core/services"
	"github.com/custodia-labs/finsight-cli/internal/logger"
)

// version is stamped by the build via SetVersion.
var version = "dev"

// Injected services. Nil until SetServices runs; command handlers check
// before use.
var (
	groupService     driving.GroupService
	ingestService    driving.IngestService
	chatService      driving.ChatService
	sessionService   driving.SessionService
	contextService   driving.ContextService
	migrationService driving.MigrationService
	configStore      driven.ConfigStore
	workspace        *services.Workspace
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "finsight",
	Short: "Document-grounded financial Q&A from your terminal",
	Long: `Finsight answers questions about financial statements you upload.

Organise PDF reports into named groups (one per company), then ask
questions in plain language. Answers are grounded in the extracted
document text, never in the model's general knowledge.

Typical flow:
  finsight group add acme
  finsight upload acme annual_report_2024.pdf
  finsight ask "What was revenue in 2024?"`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Services bundles everything the command tree needs.
type Services struct {
	Group     driving.GroupService
	Ingest    driving.IngestService
	Chat      driving.ChatService
	Session   driving.SessionService
	Context   driving.ContextService
	Migration driving.MigrationService
	Config    driven.ConfigStore
	Workspace *services.Workspace
}

// SetServices injects the service implementations used by all commands.
func SetServices(s *Services) {
	groupService = s.Group
	ingestService = s.Ingest
	chatService = s.Chat
	sessionService = s.Session
	contextService = s.Context
	migrationService = s.Migration
	configStore = s.Config
	workspace = s.Workspace
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
