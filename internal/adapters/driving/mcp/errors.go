// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Finsight. It lets AI assistants ask document-grounded questions
// and browse the uploaded financial statements.
package mcp

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")
