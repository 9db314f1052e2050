package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Finsight resources.
	uriScheme = "finsight://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing groups.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "groups",
		Name:        "groups",
		Description: "List of all document groups",
		MIMEType:    "application/json",
	}, s.handleGroupsResource)

	// Template for a group's uploaded documents.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "groups/{group}/artifacts",
		Name:        "group-artifacts",
		Description: "Documents uploaded into a specific group",
		MIMEType:    "application/json",
	}, s.handleArtifactsResource)
}

// handleGroupsResource returns a list of all document groups.
func (s *Server) handleGroupsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Group == nil {
		return jsonResource(req.Params.URI, "[]"), nil
	}

	groups, err := s.ports.Group.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}

	infos := make([]GroupOutput, len(groups))
	for i, g := range groups {
		infos[i] = GroupOutput{Name: g.Name, FileCount: g.FileCount}
	}

	data, err := json.Marshal(infos)
	if err != nil {
		return nil, fmt.Errorf("encoding groups: %w", err)
	}
	return jsonResource(req.Params.URI, string(data)), nil
}

// handleArtifactsResource returns the documents uploaded into one group.
func (s *Server) handleArtifactsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	group, err := groupFromURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	if s.ports.Ingest == nil {
		return jsonResource(req.Params.URI, "[]"), nil
	}

	keys, err := s.ports.Ingest.ListFiles(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts for %s: %w", group, err)
	}

	infos := make([]ArtifactOutput, len(keys))
	for i, key := range keys {
		infos[i] = ArtifactOutput{Group: key.Group, File: key.File}
	}

	data, err := json.Marshal(infos)
	if err != nil {
		return nil, fmt.Errorf("encoding artifacts: %w", err)
	}
	return jsonResource(req.Params.URI, string(data)), nil
}

// groupFromURI extracts the group name from a
// finsight://groups/{group}/artifacts URI.
func groupFromURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, uriScheme+"groups/")
	if !ok {
		return "", fmt.Errorf("unexpected resource URI: %s", uri)
	}
	group, ok := strings.CutSuffix(rest, "/artifacts")
	if !ok || group == "" {
		return "", fmt.Errorf("unexpected resource URI: %s", uri)
	}
	return group, nil
}

func jsonResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}
