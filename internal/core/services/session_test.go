package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finsight-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

func newSessionFixture(t *testing.T) (*memory.SessionStore, *SessionService) {
	t.Helper()
	store := memory.NewSessionStore()
	svc := NewSessionService(store)
	svc.SetClock(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) })
	return store, svc
}

func TestNewSessionService(t *testing.T) {
	_, svc := newSessionFixture(t)
	assert.NotNil(t, svc)
}

func TestSessionService_Recover_EmptyStore(t *testing.T) {
	_, svc := newSessionFixture(t)

	session, err := svc.Recover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "20260301_120000", session.ID)
	assert.Empty(t, session.Messages)
}

func TestSessionService_Recover_PicksMostRecent(t *testing.T) {
	store, svc := newSessionFixture(t)
	ctx := context.Background()

	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})
	require.NoError(t, store.SaveMessages(ctx, "20260228_090000", []domain.Message{
		{Role: domain.RoleUser, Content: "old question"},
	}))
	require.NoError(t, store.SaveMessages(ctx, "20260301_080000", []domain.Message{
		{Role: domain.RoleUser, Content: "newer question"},
		{Role: domain.RoleAssistant, Content: "newer answer"},
	}))

	session, err := svc.Recover(ctx)
	require.NoError(t, err)
	assert.Equal(t, "20260301_080000", session.ID)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, "newer question", session.Messages[0].Content)
}

func TestSessionService_Resume_Missing(t *testing.T) {
	_, svc := newSessionFixture(t)

	session, err := svc.Resume(context.Background(), "20250101_000000")
	require.NoError(t, err)
	assert.Equal(t, "20250101_000000", session.ID)
	assert.Empty(t, session.Messages)
}

func TestSessionService_Switch_FlushesOutgoing(t *testing.T) {
	store, svc := newSessionFixture(t)
	ctx := context.Background()

	outgoing := &domain.Session{
		ID: "20260301_110000",
		Messages: []domain.Message{
			{Role: domain.RoleUser, Content: "unsaved question"},
		},
	}
	incoming, err := svc.Switch(ctx, outgoing, "20260228_090000")
	require.NoError(t, err)
	assert.Equal(t, "20260228_090000", incoming.ID)

	saved, err := store.Load(ctx, "20260301_110000")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "unsaved question", saved[0].Content)
}

func TestSessionService_StartNew_FlushesOutgoing(t *testing.T) {
	store, svc := newSessionFixture(t)
	ctx := context.Background()

	outgoing := &domain.Session{
		ID:       "20260301_110000",
		Messages: []domain.Message{{Role: domain.RoleUser, Content: "q"}},
	}
	fresh, err := svc.StartNew(ctx, outgoing)
	require.NoError(t, err)
	assert.Equal(t, "20260301_120000", fresh.ID)
	assert.Empty(t, fresh.Messages)

	saved, err := store.Load(ctx, "20260301_110000")
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestSessionService_StartNew_EmptyOutgoingNotSaved(t *testing.T) {
	store, svc := newSessionFixture(t)
	ctx := context.Background()

	_, err := svc.StartNew(ctx, &domain.Session{ID: "20260301_110000"})
	require.NoError(t, err)

	infos, err := store.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos, "sessions with no turns leave no record")
}

func TestSessionService_StartNew_IDCollision(t *testing.T) {
	store, svc := newSessionFixture(t)
	ctx := context.Background()

	// A session already holds the id the pinned clock would mint.
	require.NoError(t, store.SaveMessages(ctx, "20260301_120000", []domain.Message{
		{Role: domain.RoleUser, Content: "taken"},
	}))

	fresh, err := svc.StartNew(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "20260301_120001", fresh.ID)
}

func TestSessionService_Delete(t *testing.T) {
	store, svc := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, store.SaveMessages(ctx, "20260301_110000", []domain.Message{
		{Role: domain.RoleUser, Content: "q"},
	}))

	removed, err := svc.Delete(ctx, "20260301_110000")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Delete(ctx, "20260301_110000")
	require.NoError(t, err)
	assert.False(t, removed)
}
