package river

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a river does not exist.
var ErrNotFound = errors.New("river not found")

// Repository defines operations for managing rivers.
type Repository interface {
	FindAll(ctx context.Context) ([]River, error)
	FindByID(ctx context.Context, id int64) (*River, error)
	FindByNameAndLocation(ctx context.Context, name, location string) (*River, error)
	Search(ctx context.Context, query string) ([]River, error)
	Create(ctx context.Context, r *River) error
	Update(ctx context.Context, r *River) error
	Delete(ctx context.Context, id int64) error
}

// DBRepository implements Repository using SQLite. It accepts any sqlx
// execution context, so the same implementation serves both direct
// access and transactional import.
type DBRepository struct {
	db sqlx.ExtContext
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db sqlx.ExtContext) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns all rivers ordered by name and location.
func (repo *DBRepository) FindAll(ctx context.Context) ([]River, error) {
	var rivers []River
	if err := sqlx.SelectContext(ctx, repo.db, &rivers, "SELECT * FROM rivers ORDER BY name, location"); err != nil {
		return nil, fmt.Errorf("sqlx.SelectContext(rivers) > %w", err)
	}
	return rivers, nil
}

// FindByID returns the river with the given id, or ErrNotFound.
func (repo *DBRepository) FindByID(ctx context.Context, id int64) (*River, error) {
	var r River
	err := sqlx.GetContext(ctx, repo.db, &r, "SELECT * FROM rivers WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlx.GetContext(river) > %w", err)
	}
	return &r, nil
}

// FindByNameAndLocation returns the river matching the natural key, or
// nil when no such river exists. Matching ignores case and surrounding
// whitespace, same as import duplicate detection.
func (repo *DBRepository) FindByNameAndLocation(ctx context.Context, name, location string) (*River, error) {
	var r River
	err := sqlx.GetContext(ctx, repo.db, &r,
		"SELECT * FROM rivers WHERE lower(trim(name)) = lower(trim(?)) AND lower(trim(location)) = lower(trim(?))",
		name, location)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlx.GetContext(river by key) > %w", err)
	}
	return &r, nil
}

// Search returns rivers whose name, location, region, difficulty class
// or tags contain the query, ordered by name.
func (repo *DBRepository) Search(ctx context.Context, query string) ([]River, error) {
	pattern := "%" + query + "%"
	var rivers []River
	err := sqlx.SelectContext(ctx, repo.db, &rivers,
		`SELECT * FROM rivers
		WHERE name LIKE ? OR location LIKE ? OR region LIKE ? OR difficulty_class LIKE ? OR tags LIKE ?
		ORDER BY name, location`,
		pattern, pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("sqlx.SelectContext(rivers search) > %w", err)
	}
	return rivers, nil
}

// Create inserts a new river and fills in its id.
func (repo *DBRepository) Create(ctx context.Context, r *River) error {
	result, err := repo.db.ExecContext(ctx,
		`INSERT INTO rivers (
			name, location, region, latitude, longitude, difficulty_class,
			length_miles, typical_flow_min, typical_flow_max, typical_depth_feet,
			put_in_location, take_out_location, shuttle_info, parking_details,
			best_seasons, water_level_source, hazards, portages,
			emergency_contacts, description, personal_rating, notes, tags
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Name, r.Location, r.Region, r.Latitude, r.Longitude, r.DifficultyClass,
		r.LengthMiles, r.TypicalFlowMin, r.TypicalFlowMax, r.TypicalDepthFeet,
		r.PutInLocation, r.TakeOutLocation, r.ShuttleInfo, r.ParkingDetails,
		r.BestSeasons, r.WaterLevelSource, r.Hazards, r.Portages,
		r.EmergencyContacts, r.Description, r.PersonalRating, r.Notes, r.Tags)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert river) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	r.ID = id
	return nil
}

// Update rewrites all editable fields of an existing river.
func (repo *DBRepository) Update(ctx context.Context, r *River) error {
	result, err := repo.db.ExecContext(ctx,
		`UPDATE rivers SET
			name = ?, location = ?, region = ?, latitude = ?, longitude = ?, difficulty_class = ?,
			length_miles = ?, typical_flow_min = ?, typical_flow_max = ?, typical_depth_feet = ?,
			put_in_location = ?, take_out_location = ?, shuttle_info = ?, parking_details = ?,
			best_seasons = ?, water_level_source = ?, hazards = ?, portages = ?,
			emergency_contacts = ?, description = ?, personal_rating = ?, notes = ?, tags = ?,
			last_updated = CURRENT_TIMESTAMP
		WHERE id = ?`,
		r.Name, r.Location, r.Region, r.Latitude, r.Longitude, r.DifficultyClass,
		r.LengthMiles, r.TypicalFlowMin, r.TypicalFlowMax, r.TypicalDepthFeet,
		r.PutInLocation, r.TakeOutLocation, r.ShuttleInfo, r.ParkingDetails,
		r.BestSeasons, r.WaterLevelSource, r.Hazards, r.Portages,
		r.EmergencyContacts, r.Description, r.PersonalRating, r.Notes, r.Tags,
		r.ID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update river) > %w", err)
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

// Delete removes a river. Trip logs and attachments cascade at the
// storage layer.
func (repo *DBRepository) Delete(ctx context.Context, id int64) error {
	result, err := repo.db.ExecContext(ctx, "DELETE FROM rivers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(delete river) > %w", err)
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
