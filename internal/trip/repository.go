package trip

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a trip log does not exist.
var ErrNotFound = errors.New("trip log not found")

// Repository defines operations for managing trip logs.
type Repository interface {
	FindAll(ctx context.Context) ([]TripLog, error)
	FindByRiver(ctx context.Context, riverID int64) ([]TripLog, error)
	FindByID(ctx context.Context, id int64) (*TripLog, error)
	FindByNaturalKey(ctx context.Context, riverID int64, date Date, durationHours float64) (*TripLog, error)
	Create(ctx context.Context, t *TripLog) error
	Update(ctx context.Context, t *TripLog) error
	Delete(ctx context.Context, id int64) error
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db sqlx.ExtContext
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db sqlx.ExtContext) *DBRepository {
	return &DBRepository{db: db}
}

const selectWithRiver = `SELECT t.*, r.name AS river_name, r.location AS river_location
	FROM trip_logs t
	JOIN rivers r ON t.river_id = r.id`

// FindAll returns all trip logs with their river names, newest first.
func (repo *DBRepository) FindAll(ctx context.Context) ([]TripLog, error) {
	var trips []TripLog
	if err := sqlx.SelectContext(ctx, repo.db, &trips, selectWithRiver+" ORDER BY t.trip_date DESC, t.id DESC"); err != nil {
		return nil, fmt.Errorf("sqlx.SelectContext(trip_logs) > %w", err)
	}
	return trips, nil
}

// FindByRiver returns the trip logs for one river, newest first.
func (repo *DBRepository) FindByRiver(ctx context.Context, riverID int64) ([]TripLog, error) {
	var trips []TripLog
	err := sqlx.SelectContext(ctx, repo.db, &trips,
		selectWithRiver+" WHERE t.river_id = ? ORDER BY t.trip_date DESC, t.id DESC", riverID)
	if err != nil {
		return nil, fmt.Errorf("sqlx.SelectContext(trip_logs by river) > %w", err)
	}
	return trips, nil
}

// FindByID returns the trip log with the given id, or ErrNotFound.
func (repo *DBRepository) FindByID(ctx context.Context, id int64) (*TripLog, error) {
	var t TripLog
	err := sqlx.GetContext(ctx, repo.db, &t, selectWithRiver+" WHERE t.id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlx.GetContext(trip_log) > %w", err)
	}
	return &t, nil
}

// FindByNaturalKey returns the trip log matching (river, date, duration),
// or nil when no such trip exists.
func (repo *DBRepository) FindByNaturalKey(ctx context.Context, riverID int64, date Date, durationHours float64) (*TripLog, error) {
	var t TripLog
	err := sqlx.GetContext(ctx, repo.db, &t,
		"SELECT * FROM trip_logs WHERE river_id = ? AND trip_date = ? AND duration_hours = ?",
		riverID, date, durationHours)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlx.GetContext(trip_log by key) > %w", err)
	}
	return &t, nil
}

// Create inserts a new trip log and fills in its id.
func (repo *DBRepository) Create(ctx context.Context, t *TripLog) error {
	result, err := repo.db.ExecContext(ctx,
		`INSERT INTO trip_logs (
			river_id, trip_date, companions, water_level, weather_conditions,
			flow_rate, duration_hours, difficulty_experienced, highlights,
			challenges, gear_used, trip_rating, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.RiverID, t.TripDate, t.Companions, t.WaterLevel, t.WeatherConditions,
		t.FlowRate, t.DurationHours, t.DifficultyExperienced, t.Highlights,
		t.Challenges, t.GearUsed, t.TripRating, t.Notes)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert trip_log) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	t.ID = id
	return nil
}

// Update rewrites all editable fields of an existing trip log.
func (repo *DBRepository) Update(ctx context.Context, t *TripLog) error {
	result, err := repo.db.ExecContext(ctx,
		`UPDATE trip_logs SET
			river_id = ?, trip_date = ?, companions = ?, water_level = ?, weather_conditions = ?,
			flow_rate = ?, duration_hours = ?, difficulty_experienced = ?, highlights = ?,
			challenges = ?, gear_used = ?, trip_rating = ?, notes = ?
		WHERE id = ?`,
		t.RiverID, t.TripDate, t.Companions, t.WaterLevel, t.WeatherConditions,
		t.FlowRate, t.DurationHours, t.DifficultyExperienced, t.Highlights,
		t.Challenges, t.GearUsed, t.TripRating, t.Notes, t.ID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update trip_log) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a trip log.
func (repo *DBRepository) Delete(ctx context.Context, id int64) error {
	result, err := repo.db.ExecContext(ctx, "DELETE FROM trip_logs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(delete trip_log) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
