// Package settings persists process-wide user preferences.
package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Themes supported by presentation layers. The value is stored only;
// rendering is up to the frontend.
const (
	ThemeNature = "nature"
	ThemeDark   = "dark"
)

// Settings is the single persisted preference record. It is loaded
// once at startup and mutated only through the settings command.
type Settings struct {
	ID              int64     `db:"id"`
	Theme           string    `db:"theme"`
	IncludeTripLogs bool      `db:"include_trip_logs"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Validate reports the first reason the settings cannot be stored.
func (s Settings) Validate() error {
	if s.Theme != ThemeNature && s.Theme != ThemeDark {
		return fmt.Errorf("invalid settings: unknown theme %q", s.Theme)
	}
	return nil
}

// Repository defines operations for the settings record.
type Repository interface {
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}

// DBRepository implements Repository using SQLite. The migration that
// creates the settings table also seeds the single row, so Load always
// succeeds on a migrated store.
type DBRepository struct {
	db sqlx.ExtContext
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db sqlx.ExtContext) *DBRepository {
	return &DBRepository{db: db}
}

// Load reads the settings record.
func (repo *DBRepository) Load(ctx context.Context) (*Settings, error) {
	var s Settings
	if err := sqlx.GetContext(ctx, repo.db, &s, "SELECT * FROM settings WHERE id = 1"); err != nil {
		return nil, fmt.Errorf("sqlx.GetContext(settings) > %w", err)
	}
	return &s, nil
}

// Save writes the settings record.
func (repo *DBRepository) Save(ctx context.Context, s *Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	_, err := repo.db.ExecContext(ctx,
		"UPDATE settings SET theme = ?, include_trip_logs = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1",
		s.Theme, s.IncludeTripLogs)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update settings) > %w", err)
	}
	return nil
}
