package driven

import (
	"context"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

// SessionStore persists conversation history, one record per session.
type SessionStore interface {
	// SaveMessages overwrites the full message list for a session,
	// stamping UpdatedAt. Callers must always pass the complete,
	// growing list; this is full-overwrite, not true append.
	SaveMessages(ctx context.Context, sessionID string, messages []domain.Message) error

	// Load returns a session's messages in chronological order.
	// A missing session yields an empty slice, not an error.
	Load(ctx context.Context, sessionID string) ([]domain.Message, error)

	// ListSessions returns session summaries sorted by UpdatedAt
	// descending. The first entry drives startup recovery.
	ListSessions(ctx context.Context) ([]domain.SessionInfo, error)

	// Delete removes a session. Returns false when absent.
	Delete(ctx context.Context, sessionID string) (bool, error)
}
