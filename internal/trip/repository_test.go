package trip_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackworthen/river-run/internal/testutil"
	"github.com/jackworthen/river-run/internal/trip"
)

func TestDBRepository_Create(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	r := testutil.CreateRiver(t, db, "Gauley River", "West Virginia")
	repo := trip.NewDBRepository(db)

	flowRate := int64(2400)
	rating := int64(5)
	tl := &trip.TripLog{
		RiverID:       r.ID,
		TripDate:      trip.NewDate(time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)),
		Companions:    "Sam, Alex",
		WaterLevel:    "high",
		FlowRate:      &flowRate,
		DurationHours: 4.5,
		TripRating:    &rating,
	}
	require.NoError(t, repo.Create(ctx, tl))
	assert.NotZero(t, tl.ID)

	got, err := repo.FindByID(ctx, tl.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-09-20", got.TripDate.Format("2006-01-02"))
	assert.Equal(t, "Gauley River", got.RiverName)
	assert.Equal(t, "West Virginia", got.RiverLocation)
	assert.Equal(t, 4.5, got.DurationHours)
	require.NotNil(t, got.FlowRate)
	assert.EqualValues(t, 2400, *got.FlowRate)
	assert.False(t, got.CreatedDate.IsZero())
}

func TestDBRepository_Create_missingRiver(t *testing.T) {
	db := testutil.NewDB(t)

	tl := &trip.TripLog{
		RiverID:  42,
		TripDate: trip.NewDate(time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)),
	}
	assert.ErrorContains(t, trip.NewDBRepository(db).Create(context.Background(), tl), "FOREIGN KEY constraint failed")
}

func TestDBRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	gauley := testutil.CreateRiver(t, db, "Gauley River", "West Virginia")
	arkansas := testutil.CreateRiver(t, db, "Arkansas River", "Colorado")

	testutil.CreateTrip(t, db, gauley.ID, "2025-09-20", 4)
	testutil.CreateTrip(t, db, arkansas.ID, "2025-06-14", 6)
	testutil.CreateTrip(t, db, gauley.ID, "2025-10-04", 5)

	trips, err := trip.NewDBRepository(db).FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 3)

	// Newest first.
	assert.Equal(t, "2025-10-04", trips[0].TripDate.Format("2006-01-02"))
	assert.Equal(t, "2025-09-20", trips[1].TripDate.Format("2006-01-02"))
	assert.Equal(t, "2025-06-14", trips[2].TripDate.Format("2006-01-02"))
	assert.Equal(t, "Arkansas River", trips[2].RiverName)
}

func TestDBRepository_FindByRiver(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	gauley := testutil.CreateRiver(t, db, "Gauley River", "West Virginia")
	arkansas := testutil.CreateRiver(t, db, "Arkansas River", "Colorado")

	testutil.CreateTrip(t, db, gauley.ID, "2025-09-20", 4)
	testutil.CreateTrip(t, db, arkansas.ID, "2025-06-14", 6)

	trips, err := trip.NewDBRepository(db).FindByRiver(ctx, gauley.ID)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "Gauley River", trips[0].RiverName)
}

func TestDBRepository_FindByNaturalKey(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	r := testutil.CreateRiver(t, db, "Gauley River", "West Virginia")
	created := testutil.CreateTrip(t, db, r.ID, "2025-09-20", 4.5)
	repo := trip.NewDBRepository(db)

	date := trip.NewDate(time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC))

	got, err := repo.FindByNaturalKey(ctx, r.ID, date, 4.5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	t.Run("different duration is a different trip", func(t *testing.T) {
		got, err := repo.FindByNaturalKey(ctx, r.ID, date, 6)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestDBRepository_Update(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	r := testutil.CreateRiver(t, db, "Gauley River", "West Virginia")
	tl := testutil.CreateTrip(t, db, r.ID, "2025-09-20", 4)
	repo := trip.NewDBRepository(db)

	tl.Highlights = "Clean line through Pillow Rock"
	tl.DurationHours = 5
	require.NoError(t, repo.Update(ctx, tl))

	got, err := repo.FindByID(ctx, tl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clean line through Pillow Rock", got.Highlights)
	assert.Equal(t, float64(5), got.DurationHours)

	t.Run("missing trip", func(t *testing.T) {
		missing := *tl
		missing.ID = 999
		assert.ErrorIs(t, repo.Update(ctx, &missing), trip.ErrNotFound)
	})
}

func TestDBRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	r := testutil.CreateRiver(t, db, "Gauley River", "West Virginia")
	tl := testutil.CreateTrip(t, db, r.ID, "2025-09-20", 4)
	repo := trip.NewDBRepository(db)

	require.NoError(t, repo.Delete(ctx, tl.ID))
	_, err := repo.FindByID(ctx, tl.ID)
	assert.ErrorIs(t, err, trip.ErrNotFound)

	t.Run("missing trip", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, 999), trip.ErrNotFound)
	})
}
