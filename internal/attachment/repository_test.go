package attachment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackworthen/river-run/internal/attachment"
	"github.com/jackworthen/river-run/internal/testutil"
)

func TestDBRepository_Create(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	r := testutil.CreateRiver(t, db, "Gauley River", "West Virginia")
	repo := attachment.NewDBRepository(db)

	a := &attachment.Attachment{
		RiverID:     r.ID,
		FileName:    "rapids_map.pdf",
		FilePath:    "/data/attachments/rapids_map_abc.pdf",
		FileType:    ".pdf",
		FileSize:    2048,
		Description: "Rapid-by-rapid map",
	}
	require.NoError(t, repo.Create(ctx, a))
	assert.NotZero(t, a.ID)

	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "rapids_map.pdf", got.FileName)
	assert.Equal(t, ".pdf", got.FileType)
	assert.EqualValues(t, 2048, got.FileSize)
	assert.False(t, got.UploadDate.IsZero())
}

func TestDBRepository_FindByRiver(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	gauley := testutil.CreateRiver(t, db, "Gauley River", "West Virginia")
	arkansas := testutil.CreateRiver(t, db, "Arkansas River", "Colorado")
	repo := attachment.NewDBRepository(db)

	require.NoError(t, repo.Create(ctx, &attachment.Attachment{RiverID: gauley.ID, FileName: "map.pdf", FilePath: "/a/map.pdf"}))
	require.NoError(t, repo.Create(ctx, &attachment.Attachment{RiverID: arkansas.ID, FileName: "gauge.png", FilePath: "/a/gauge.png"}))

	got, err := repo.FindByRiver(ctx, gauley.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "map.pdf", got[0].FileName)
}

func TestDBRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	r := testutil.CreateRiver(t, db, "Gauley River", "West Virginia")
	repo := attachment.NewDBRepository(db)

	a := &attachment.Attachment{RiverID: r.ID, FileName: "map.pdf", FilePath: "/a/map.pdf"}
	require.NoError(t, repo.Create(ctx, a))

	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err := repo.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, attachment.ErrNotFound)

	t.Run("missing attachment", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, 999), attachment.ErrNotFound)
	})
}
