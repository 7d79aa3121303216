package database

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRaw(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "river_data.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestMigrate_upgradePreservesRows(t *testing.T) {
	db := openRaw(t)

	// A version 1 store, as written by the first release.
	require.NoError(t, applyMigration(db, migrations[0]))
	_, err := db.Exec("INSERT INTO rivers (name, location) VALUES ('Gauley River', 'West Virginia')")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO trip_logs (river_id, trip_date, duration_hours) VALUES (1, '2025-09-20', 4)")
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	version, err := schemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)

	var name, tags string
	require.NoError(t, db.QueryRow("SELECT name, tags FROM rivers WHERE id = 1").Scan(&name, &tags))
	assert.Equal(t, "Gauley River", name)
	assert.Empty(t, tags, "added columns default to empty for existing rows")

	var trips int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM trip_logs").Scan(&trips))
	assert.Equal(t, 1, trips)

	var theme string
	require.NoError(t, db.QueryRow("SELECT theme FROM settings WHERE id = 1").Scan(&theme))
	assert.Equal(t, "nature", theme)
}

func TestMigrate_idempotent(t *testing.T) {
	db := openRaw(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	version, err := schemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)
}

func TestMigrate_newerStoreIsRejected(t *testing.T) {
	db := openRaw(t)

	_, err := db.Exec("PRAGMA user_version = 99")
	require.NoError(t, err)

	err = Migrate(db)
	assert.ErrorContains(t, err, "store schema version 99 is newer than supported version")
}
