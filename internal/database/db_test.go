package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "river_data.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	var foreignKeys int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	assert.Equal(t, 1, foreignKeys, "foreign key enforcement must be on")

	version, err := schemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)

	t.Run("reopening an up to date store", func(t *testing.T) {
		require.NoError(t, db.Close())

		db2, err := Open(path)
		require.NoError(t, err)
		defer db2.Close()

		version, err := schemaVersion(db2)
		require.NoError(t, err)
		assert.Equal(t, SchemaVersion, version)
	})
}
