package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

func TestNewArtifactStore(t *testing.T) {
	store := NewArtifactStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.artifacts)
	assert.NotNil(t, store.legacy)
}

func TestArtifactStore_SaveAndLoad(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()

	artifact := &domain.Artifact{
		Key:              domain.ArtifactKey{Group: "Acme", File: "2023.pdf"},
		GroupName:        "Acme",
		OriginalFilename: "2023.pdf",
		Text:             "Revenue: 100",
	}

	err := store.Save(ctx, artifact)
	require.NoError(t, err)

	loaded, err := store.Load(ctx, artifact.Key)
	require.NoError(t, err)
	assert.Equal(t, "Revenue: 100", loaded.Text)
	assert.False(t, loaded.ExtractedAt.IsZero(), "Save must stamp ExtractedAt")
	assert.Equal(t, domain.ArtifactSchemaVersion, loaded.SchemaVersion)
}

func TestArtifactStore_Save_InvalidKey(t *testing.T) {
	store := NewArtifactStore()
	err := store.Save(context.Background(), &domain.Artifact{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestArtifactStore_Load_NotFound(t *testing.T) {
	store := NewArtifactStore()
	_, err := store.Load(context.Background(), domain.ArtifactKey{Group: "x", File: "y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArtifactStore_List_Sorted(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()

	for _, key := range []domain.ArtifactKey{
		{Group: "Beta", File: "a.pdf"},
		{Group: "Acme", File: "2023.pdf"},
		{Group: "Acme", File: "2022.pdf"},
	} {
		require.NoError(t, store.Save(ctx, &domain.Artifact{Key: key, GroupName: key.Group}))
	}

	keys, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 3)
	assert.Equal(t, domain.ArtifactKey{Group: "Acme", File: "2022.pdf"}, keys[0])
	assert.Equal(t, domain.ArtifactKey{Group: "Acme", File: "2023.pdf"}, keys[1])
	assert.Equal(t, domain.ArtifactKey{Group: "Beta", File: "a.pdf"}, keys[2])
}

func TestArtifactStore_ListGroup(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Artifact{Key: domain.ArtifactKey{Group: "Acme", File: "a.pdf"}}))
	require.NoError(t, store.Save(ctx, &domain.Artifact{Key: domain.ArtifactKey{Group: "Beta", File: "b.pdf"}}))

	keys, err := store.ListGroup(ctx, "Acme")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "a.pdf", keys[0].File)
}

func TestArtifactStore_Delete(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()
	key := domain.ArtifactKey{Group: "Acme", File: "2023.pdf"}

	require.NoError(t, store.Save(ctx, &domain.Artifact{Key: key}))

	removed, err := store.Delete(ctx, key)
	require.NoError(t, err)
	assert.True(t, removed)

	// Deleting again is not an error.
	removed, err = store.Delete(ctx, key)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestArtifactStore_Legacy(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()

	store.SeedLegacy("old_report.json", domain.Artifact{Text: "old data"})

	names, err := store.ListLegacy(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"old_report.json"}, names)

	loaded, err := store.LoadLegacy(ctx, "old_report.json")
	require.NoError(t, err)
	assert.Equal(t, "old data", loaded.Text)

	removed, err := store.DeleteLegacy(ctx, "old_report.json")
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = store.LoadLegacy(ctx, "old_report.json")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
