package mcp

import (
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat answers document-grounded questions.
	Chat driving.ChatService

	// Group lists the document groups.
	Group driving.GroupService

	// Ingest lists the uploaded documents.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	// Group and Ingest are optional; their tools degrade to empty lists.
	return nil
}
