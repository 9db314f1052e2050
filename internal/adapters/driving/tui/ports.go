// Package tui provides the interactive chat view for finsight.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driving"
	"github.com/custodia-labs/finsight-cli/internal/core/services"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat answers document-grounded questions.
	Chat driving.ChatService

	// Session manages conversation sessions. Optional; without it the
	// new-session keybinding is disabled.
	Session driving.SessionService

	// Workspace carries the current session and group selection.
	// Optional; without it the view starts with an empty transcript.
	Workspace *services.Workspace
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
