package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask_documents tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the uploaded financial statements"`
}

// AskOutput is the output schema for the ask_documents tool.
type AskOutput struct {
	Answer string `json:"answer"`

	// Failed reports that the model call failed and Answer holds the
	// recorded failure message.
	Failed bool `json:"failed,omitempty"`

	// ContextTruncated warns that the document context was cut to the
	// token budget and later documents may be missing.
	ContextTruncated bool `json:"context_truncated,omitempty"`

	// SessionID is the conversation the turn was recorded under.
	SessionID string `json:"session_id"`
}

// ListGroupsOutput is the output schema for the list_groups tool.
type ListGroupsOutput struct {
	Groups []GroupOutput `json:"groups"`
	Count  int           `json:"count"`
}

// GroupOutput represents a single document group.
type GroupOutput struct {
	Name      string `json:"name"`
	FileCount int    `json:"file_count"`
}

// ListArtifactsInput is the input schema for the list_artifacts tool.
type ListArtifactsInput struct {
	Group string `json:"group,omitempty" jsonschema:"optional group name to scope the listing; empty lists every artifact"`
}

// ListArtifactsOutput is the output schema for the list_artifacts tool.
type ListArtifactsOutput struct {
	Artifacts []ArtifactOutput `json:"artifacts"`
	Count     int              `json:"count"`
}

// ArtifactOutput represents a single uploaded document.
type ArtifactOutput struct {
	Group string `json:"group"`
	File  string `json:"file"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_documents",
		Description: "Ask a question answered from the uploaded financial statements",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_groups",
		Description: "List the document groups (one per company)",
	}, s.handleListGroups)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_artifacts",
		Description: "List uploaded documents, optionally scoped to one group",
	}, s.handleListArtifacts)
}

// handleAsk handles the ask_documents tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	result, err := s.ports.Chat.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:           result.Answer,
		Failed:           result.Failed,
		ContextTruncated: result.ContextTruncated,
		SessionID:        result.SessionID,
	}, nil
}

// handleListGroups handles the list_groups tool invocation.
func (s *Server) handleListGroups(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListGroupsOutput, error) {
	if s.ports.Group == nil {
		return nil, ListGroupsOutput{Groups: []GroupOutput{}}, nil
	}

	groups, err := s.ports.Group.List(ctx)
	if err != nil {
		return nil, ListGroupsOutput{}, err
	}

	output := ListGroupsOutput{
		Groups: make([]GroupOutput, len(groups)),
		Count:  len(groups),
	}
	for i, g := range groups {
		output.Groups[i] = GroupOutput{Name: g.Name, FileCount: g.FileCount}
	}
	return nil, output, nil
}

// handleListArtifacts handles the list_artifacts tool invocation.
func (s *Server) handleListArtifacts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListArtifactsInput,
) (*mcp.CallToolResult, ListArtifactsOutput, error) {
	if s.ports.Ingest == nil {
		return nil, ListArtifactsOutput{Artifacts: []ArtifactOutput{}}, nil
	}

	keys, err := s.ports.Ingest.ListFiles(ctx, input.Group)
	if err != nil {
		return nil, ListArtifactsOutput{}, err
	}

	output := ListArtifactsOutput{
		Artifacts: make([]ArtifactOutput, len(keys)),
		Count:     len(keys),
	}
	for i, key := range keys {
		output.Artifacts[i] = ArtifactOutput{Group: key.Group, File: key.File}
	}
	return nil, output, nil
}
