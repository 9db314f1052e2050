package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session

	// now is swappable so tests can control UpdatedAt ordering.
	now func() time.Time
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.Session),
		now:      time.Now,
	}
}

// SetClock overrides the store's clock. Test helper.
func (s *SessionStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SaveMessages overwrites the full message list for a session.
func (s *SessionStore) SaveMessages(_ context.Context, sessionID string, messages []domain.Message) error {
	if sessionID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]domain.Message, len(messages))
	copy(msgs, messages)
	s.sessions[sessionID] = domain.Session{
		ID:        sessionID,
		UpdatedAt: s.now(),
		Messages:  msgs,
	}
	return nil
}

// Load returns a session's messages; empty slice when absent.
func (s *SessionStore) Load(_ context.Context, sessionID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return []domain.Message{}, nil
	}
	msgs := make([]domain.Message, len(sess.Messages))
	copy(msgs, sess.Messages)
	return msgs, nil
}

// ListSessions returns summaries sorted by UpdatedAt descending.
func (s *SessionStore) ListSessions(_ context.Context) ([]domain.SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]domain.SessionInfo, 0, len(s.sessions))
	for _, sess := range s.sessions {
		infos = append(infos, domain.SessionInfo{
			ID:           sess.ID,
			UpdatedAt:    sess.UpdatedAt,
			MessageCount: len(sess.Messages),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].UpdatedAt.After(infos[j].UpdatedAt)
	})
	return infos, nil
}

// Delete removes a session. Returns false when absent.
func (s *SessionStore) Delete(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return false, nil
	}
	delete(s.sessions, sessionID)
	return true, nil
}
