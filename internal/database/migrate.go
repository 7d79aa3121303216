package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SchemaVersion is the schema version this build writes and expects.
const SchemaVersion = 4

type migration struct {
	version    int
	name       string
	statements []string
}

// Migrations are additive only: new tables and new columns, never
// rewrites or drops. An upgraded store stays readable by the data it
// already holds.
var migrations = []migration{
	{
		version: 1,
		name:    "base tables",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS rivers (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				location TEXT NOT NULL,
				region TEXT NOT NULL DEFAULT '',
				latitude REAL,
				longitude REAL,
				difficulty_class TEXT NOT NULL DEFAULT '',
				length_miles REAL,
				typical_flow_min INTEGER,
				typical_flow_max INTEGER,
				put_in_location TEXT NOT NULL DEFAULT '',
				take_out_location TEXT NOT NULL DEFAULT '',
				shuttle_info TEXT NOT NULL DEFAULT '',
				parking_details TEXT NOT NULL DEFAULT '',
				best_seasons TEXT NOT NULL DEFAULT '',
				water_level_source TEXT NOT NULL DEFAULT '',
				hazards TEXT NOT NULL DEFAULT '',
				portages TEXT NOT NULL DEFAULT '',
				emergency_contacts TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				personal_rating INTEGER,
				notes TEXT NOT NULL DEFAULT '',
				date_added TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				last_updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_rivers_name_location ON rivers(name, location)`,
			`CREATE TABLE IF NOT EXISTS trip_logs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				river_id INTEGER NOT NULL,
				trip_date DATE NOT NULL,
				companions TEXT NOT NULL DEFAULT '',
				water_level TEXT NOT NULL DEFAULT '',
				weather_conditions TEXT NOT NULL DEFAULT '',
				flow_rate INTEGER,
				duration_hours REAL NOT NULL DEFAULT 0,
				difficulty_experienced TEXT NOT NULL DEFAULT '',
				highlights TEXT NOT NULL DEFAULT '',
				challenges TEXT NOT NULL DEFAULT '',
				gear_used TEXT NOT NULL DEFAULT '',
				trip_rating INTEGER,
				notes TEXT NOT NULL DEFAULT '',
				created_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (river_id) REFERENCES rivers (id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_trip_logs_river ON trip_logs(river_id)`,
			`CREATE TABLE IF NOT EXISTS attachments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				river_id INTEGER NOT NULL,
				file_name TEXT NOT NULL,
				file_path TEXT NOT NULL,
				file_type TEXT NOT NULL DEFAULT '',
				file_size INTEGER NOT NULL DEFAULT 0,
				description TEXT NOT NULL DEFAULT '',
				upload_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (river_id) REFERENCES rivers (id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_attachments_river ON attachments(river_id)`,
		},
	},
	{
		version: 2,
		name:    "river tags",
		statements: []string{
			`ALTER TABLE rivers ADD COLUMN tags TEXT NOT NULL DEFAULT ''`,
		},
	},
	{
		version: 3,
		name:    "river typical depth",
		statements: []string{
			`ALTER TABLE rivers ADD COLUMN typical_depth_feet REAL`,
		},
	},
	{
		version: 4,
		name:    "settings table",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS settings (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				theme TEXT NOT NULL DEFAULT 'nature',
				include_trip_logs INTEGER NOT NULL DEFAULT 1,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`INSERT OR IGNORE INTO settings (id) VALUES (1)`,
		},
	},
}

// Migrate brings the store schema up to SchemaVersion. Each step runs
// in its own transaction; a failing step leaves the previous version's
// marker in place and is reported to the caller.
func Migrate(db *sqlx.DB) error {
	current, err := schemaVersion(db)
	if err != nil {
		return fmt.Errorf("schemaVersion() > %w", err)
	}
	if current > SchemaVersion {
		return fmt.Errorf("store schema version %d is newer than supported version %d", current, SchemaVersion)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("applyMigration(%d %s) > %w", m.version, m.name, err)
		}
	}
	return nil
}

func applyMigration(db *sqlx.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("db.Begin() > %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range m.statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("tx.Exec() > %w", err)
		}
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
		return fmt.Errorf("tx.Exec(user_version) > %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

func schemaVersion(db *sqlx.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("db.QueryRow(user_version) > %w", err)
	}
	return version, nil
}
