package driving

import (
	"context"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

// SessionService manages conversation sessions and the process-wide
// "current session" pointer held in the workspace.
type SessionService interface {
	// Recover restores the most recently updated session, or mints a
	// fresh id with no messages when none exist. Used at startup when
	// no current-session pointer is set.
	Recover(ctx context.Context) (*domain.Session, error)

	// Resume loads a specific session. A missing session yields a
	// session with that id and no messages.
	Resume(ctx context.Context, sessionID string) (*domain.Session, error)

	// Switch flushes outgoing under its own id, then loads incoming.
	// Unsaved turns are never silently discarded.
	Switch(ctx context.Context, outgoing *domain.Session, incomingID string) (*domain.Session, error)

	// StartNew flushes outgoing, then mints a fresh empty session.
	StartNew(ctx context.Context, outgoing *domain.Session) (*domain.Session, error)

	// List returns session summaries, most recently updated first.
	List(ctx context.Context) ([]domain.SessionInfo, error)

	// Delete removes a session. Returns false when absent.
	Delete(ctx context.Context, sessionID string) (bool, error)
}
