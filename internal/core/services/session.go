package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finsight-cli/internal/core/ports/driving"
	"github.com/custodia-labs/finsight-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService manages conversation lifecycle on top of the session
// store. It never discards unsaved turns: every transition away from a
// session flushes it first.
type SessionService struct {
	store driven.SessionStore
	now   func() time.Time
}

// NewSessionService creates a new session service.
func NewSessionService(store driven.SessionStore) *SessionService {
	return &SessionService{store: store, now: time.Now}
}

// SetClock overrides the clock. Test use only.
func (s *SessionService) SetClock(now func() time.Time) {
	s.now = now
}

// Recover restores the most recently updated session, or mints a fresh
// one when no history exists.
func (s *SessionService) Recover(ctx context.Context) (*domain.Session, error) {
	infos, err := s.store.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	if len(infos) == 0 {
		return s.mint(ctx)
	}
	logger.Debug("recovering session %s", infos[0].ID)
	return s.Resume(ctx, infos[0].ID)
}

// Resume loads a session by id. A missing session resumes as that id
// with no messages, so stale current-session pointers self-heal.
func (s *SessionService) Resume(ctx context.Context, sessionID string) (*domain.Session, error) {
	messages, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", sessionID, err)
	}
	return &domain.Session{ID: sessionID, Messages: messages}, nil
}

// Switch flushes outgoing, then loads incoming.
func (s *SessionService) Switch(ctx context.Context, outgoing *domain.Session, incomingID string) (*domain.Session, error) {
	if err := s.flush(ctx, outgoing); err != nil {
		return nil, err
	}
	return s.Resume(ctx, incomingID)
}

// StartNew flushes outgoing, then mints a fresh empty session.
func (s *SessionService) StartNew(ctx context.Context, outgoing *domain.Session) (*domain.Session, error) {
	if err := s.flush(ctx, outgoing); err != nil {
		return nil, err
	}
	return s.mint(ctx)
}

// List returns session summaries, most recently updated first.
func (s *SessionService) List(ctx context.Context) ([]domain.SessionInfo, error) {
	return s.store.ListSessions(ctx)
}

// Delete removes a session.
func (s *SessionService) Delete(ctx context.Context, sessionID string) (bool, error) {
	return s.store.Delete(ctx, sessionID)
}

// flush persists outgoing's messages under its own id. Sessions with no
// turns are not written, so abandoned empty sessions leave no files.
func (s *SessionService) flush(ctx context.Context, outgoing *domain.Session) error {
	if outgoing == nil || len(outgoing.Messages) == 0 {
		return nil
	}
	if err := s.store.SaveMessages(ctx, outgoing.ID, outgoing.Messages); err != nil {
		return fmt.Errorf("flushing session %s: %w", outgoing.ID, err)
	}
	return nil
}

// mint creates a fresh session with a timestamp-derived id. When the id
// collides with an existing session (two mints inside one second) the
// clock is nudged forward until the id is free.
func (s *SessionService) mint(ctx context.Context) (*domain.Session, error) {
	infos, err := s.store.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	taken := make(map[string]bool, len(infos))
	for _, info := range infos {
		taken[info.ID] = true
	}

	now := s.now()
	id := domain.NewSessionID(now)
	for taken[id] {
		now = now.Add(time.Second)
		id = domain.NewSessionID(now)
	}
	return &domain.Session{ID: id}, nil
}
