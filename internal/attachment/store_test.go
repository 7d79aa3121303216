package attachment_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackworthen/river-run/internal/attachment"
	"github.com/jackworthen/river-run/internal/testutil"
)

func TestStore_Add(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	r := testutil.CreateRiver(t, db, "Gauley River", "West Virginia")

	source := filepath.Join(t.TempDir(), "rapids_map.PDF")
	require.NoError(t, os.WriteFile(source, []byte("map contents"), 0644))

	dir := filepath.Join(t.TempDir(), "attachments")
	repo := attachment.NewDBRepository(db)
	store := attachment.NewStore(repo, dir)

	a, err := store.Add(ctx, r.ID, source, "Rapid-by-rapid map")
	require.NoError(t, err)

	assert.Equal(t, "rapids_map.PDF", a.FileName)
	assert.Equal(t, ".pdf", a.FileType)
	assert.EqualValues(t, len("map contents"), a.FileSize)
	assert.Equal(t, "Rapid-by-rapid map", a.Description)

	// The stored copy lives under the attachments directory with a
	// randomized name, next to nothing else.
	assert.Equal(t, dir, filepath.Dir(a.FilePath))
	assert.NotEqual(t, "rapids_map.PDF", filepath.Base(a.FilePath))
	stored, err := os.ReadFile(a.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "map contents", string(stored))

	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.FilePath, got.FilePath)

	t.Run("same name does not collide", func(t *testing.T) {
		b, err := store.Add(ctx, r.ID, source, "")
		require.NoError(t, err)
		assert.NotEqual(t, a.FilePath, b.FilePath)
	})
	t.Run("missing source", func(t *testing.T) {
		_, err := store.Add(ctx, r.ID, filepath.Join(t.TempDir(), "missing.pdf"), "")
		assert.Error(t, err)
	})
	t.Run("directory source", func(t *testing.T) {
		_, err := store.Add(ctx, r.ID, t.TempDir(), "")
		assert.ErrorContains(t, err, "is a directory")
	})
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	r := testutil.CreateRiver(t, db, "Gauley River", "West Virginia")

	source := filepath.Join(t.TempDir(), "map.pdf")
	require.NoError(t, os.WriteFile(source, []byte("map"), 0644))

	repo := attachment.NewDBRepository(db)
	store := attachment.NewStore(repo, filepath.Join(t.TempDir(), "attachments"))

	a, err := store.Add(ctx, r.ID, source, "")
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, a.ID))

	_, err = repo.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, attachment.ErrNotFound)
	assert.NoFileExists(t, a.FilePath)

	t.Run("already deleted file", func(t *testing.T) {
		b, err := store.Add(ctx, r.ID, source, "")
		require.NoError(t, err)
		require.NoError(t, os.Remove(b.FilePath))

		assert.NoError(t, store.Remove(ctx, b.ID))
	})
}
