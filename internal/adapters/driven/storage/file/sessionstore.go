package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore persists conversations as one JSON file per session
// under <data>/history/<id>.json.
type SessionStore struct {
	layout Layout

	// now is swappable so tests can control UpdatedAt ordering.
	now func() time.Time
}

// sessionRecord is the on-disk schema.
type sessionRecord struct {
	SessionID string          `json:"session_id"`
	UpdatedAt time.Time       `json:"updated_at"`
	Messages  []messageRecord `json:"messages"`
}

type messageRecord struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewSessionStore creates a filesystem session store.
func NewSessionStore(layout Layout) *SessionStore {
	return &SessionStore{layout: layout, now: time.Now}
}

// SetClock overrides the store's clock. Test helper.
func (s *SessionStore) SetClock(now func() time.Time) { s.now = now }

func (s *SessionStore) sessionPath(sessionID string) string {
	return filepath.Join(s.layout.HistoryDir(), sessionID+recordExt)
}

// SaveMessages overwrites the full message list for a session,
// stamping UpdatedAt.
func (s *SessionStore) SaveMessages(_ context.Context, sessionID string, messages []domain.Message) error {
	if !validName(sessionID) {
		return fmt.Errorf("session id %q: %w", sessionID, domain.ErrInvalidInput)
	}
	rec := sessionRecord{
		SessionID: sessionID,
		UpdatedAt: s.now(),
		Messages:  make([]messageRecord, len(messages)),
	}
	for i, m := range messages {
		rec.Messages[i] = messageRecord{Role: m.Role, Content: m.Content}
	}
	return writeJSONAtomic(s.sessionPath(sessionID), rec)
}

// Load returns a session's messages; empty slice when absent.
func (s *SessionStore) Load(_ context.Context, sessionID string) ([]domain.Message, error) {
	if !validName(sessionID) {
		return []domain.Message{}, nil
	}
	var rec sessionRecord
	if err := readJSON(s.sessionPath(sessionID), &rec); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Message{}, nil
		}
		return nil, err
	}
	messages := make([]domain.Message, len(rec.Messages))
	for i, m := range rec.Messages {
		messages[i] = domain.Message{Role: m.Role, Content: m.Content}
	}
	return messages, nil
}

// ListSessions returns summaries sorted by UpdatedAt descending.
func (s *SessionStore) ListSessions(_ context.Context) ([]domain.SessionInfo, error) {
	entries, err := os.ReadDir(s.layout.HistoryDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	var infos []domain.SessionInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) || !validName(name) {
			continue
		}
		var rec sessionRecord
		if err := readJSON(filepath.Join(s.layout.HistoryDir(), name), &rec); err != nil {
			// An unreadable session should not hide the others.
			continue
		}
		id := rec.SessionID
		if id == "" {
			id = strings.TrimSuffix(name, recordExt)
		}
		infos = append(infos, domain.SessionInfo{
			ID:           id,
			UpdatedAt:    rec.UpdatedAt,
			MessageCount: len(rec.Messages),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].UpdatedAt.After(infos[j].UpdatedAt)
	})
	return infos, nil
}

// Delete removes a session. Returns false when absent.
func (s *SessionStore) Delete(_ context.Context, sessionID string) (bool, error) {
	if !validName(sessionID) {
		return false, nil
	}
	err := os.Remove(s.sessionPath(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return true, nil
}
