package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

func TestGroupStore_SaveAndGet(t *testing.T) {
	store := NewGroupStore()
	ctx := context.Background()

	group := domain.Group{
		Name:      "Acme",
		CreatedAt: time.Now(),
		FileCount: 2,
	}

	require.NoError(t, store.Save(ctx, group))

	got, err := store.Get(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, 2, got.FileCount)
}

func TestGroupStore_Save_EmptyName(t *testing.T) {
	store := NewGroupStore()
	err := store.Save(context.Background(), domain.Group{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGroupStore_Get_NotFound(t *testing.T) {
	store := NewGroupStore()
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGroupStore_List_Sorted(t *testing.T) {
	store := NewGroupStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Group{Name: "Zeta"}))
	require.NoError(t, store.Save(ctx, domain.Group{Name: "Acme"}))

	groups, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Acme", groups[0].Name)
	assert.Equal(t, "Zeta", groups[1].Name)
}

func TestGroupStore_Delete(t *testing.T) {
	store := NewGroupStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Group{Name: "Acme"}))

	removed, err := store.Delete(ctx, "Acme")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Delete(ctx, "Acme")
	require.NoError(t, err)
	assert.False(t, removed)
}
