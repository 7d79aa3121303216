// Package testutil provides shared test helpers for stores and fixtures.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/jackworthen/river-run/internal/database"
	"github.com/jackworthen/river-run/internal/river"
	"github.com/jackworthen/river-run/internal/trip"
)

// NewDB opens a fully migrated SQLite store in a temporary directory.
// The store is closed when the test finishes.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "river_data.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

// RiverOption configures optional fields when creating a river fixture.
type RiverOption func(*river.River)

// WithDifficulty sets the difficulty class.
func WithDifficulty(d river.Difficulty) RiverOption {
	return func(r *river.River) {
		r.DifficultyClass = d
	}
}

// WithRating sets the personal rating.
func WithRating(rating int64) RiverOption {
	return func(r *river.River) {
		r.PersonalRating = &rating
	}
}

// CreateRiver inserts a river fixture and returns it with its id set.
func CreateRiver(t *testing.T, db *sqlx.DB, name, location string, opts ...RiverOption) *river.River {
	t.Helper()

	r := &river.River{
		Name:     name,
		Location: location,
	}
	for _, opt := range opts {
		opt(r)
	}
	require.NoError(t, river.NewDBRepository(db).Create(context.Background(), r))
	return r
}

// CreateTrip inserts a trip log fixture for the river and returns it
// with its id set.
func CreateTrip(t *testing.T, db *sqlx.DB, riverID int64, date string, durationHours float64) *trip.TripLog {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)

	tl := &trip.TripLog{
		RiverID:       riverID,
		TripDate:      trip.NewDate(parsed),
		DurationHours: durationHours,
	}
	require.NoError(t, trip.NewDBRepository(db).Create(context.Background(), tl))
	return tl
}
