// Package trip provides the trip log domain model and repository.
package trip

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackworthen/river-run/internal/timeutil"
)

// Date represents a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate creates a Date from a time.Time, truncated to the day.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Date) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("json.Unmarshal(date) > %w", err)
	}
	parsed, err := parseDate(value)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

// Value implements the driver.Valuer interface. Dates are stored as
// their YYYY-MM-DD form.
func (d Date) Value() (driver.Value, error) {
	return d.Format("2006-01-02"), nil
}

// Scan implements the sql.Scanner interface.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		parsed, err := parseDate(v)
		if err != nil {
			return err
		}
		d.Time = parsed
		return nil
	case []byte:
		parsed, err := parseDate(string(v))
		if err != nil {
			return err
		}
		d.Time = parsed
		return nil
	}
	return fmt.Errorf("unsupported date source type %T", src)
}

func parseDate(value string) (time.Time, error) {
	// The YYYY-MM-DD form is canonical; timestamps appear in documents
	// written by older releases.
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date %q: expected YYYY-MM-DD or a timestamp", value)
}

// TripLog represents one session on a river.
type TripLog struct {
	ID                    int64              `db:"id" json:"id,omitempty"`
	RiverID               int64              `db:"river_id" json:"river_id,omitempty"`
	TripDate              Date               `db:"trip_date" json:"trip_date"`
	Companions            string             `db:"companions" json:"companions,omitempty"`
	WaterLevel            string             `db:"water_level" json:"water_level,omitempty"`
	WeatherConditions     string             `db:"weather_conditions" json:"weather_conditions,omitempty"`
	FlowRate              *int64             `db:"flow_rate" json:"flow_rate,omitempty"`
	DurationHours         float64            `db:"duration_hours" json:"duration_hours"`
	DifficultyExperienced string             `db:"difficulty_experienced" json:"difficulty_experienced,omitempty"`
	Highlights            string             `db:"highlights" json:"highlights,omitempty"`
	Challenges            string             `db:"challenges" json:"challenges,omitempty"`
	GearUsed              string             `db:"gear_used" json:"gear_used,omitempty"`
	TripRating            *int64             `db:"trip_rating" json:"trip_rating,omitempty"`
	Notes                 string             `db:"notes" json:"notes,omitempty"`
	CreatedDate           timeutil.Timestamp `db:"created_date" json:"created_date,omitzero"`

	// RiverName and RiverLocation are joined in by queries and carried
	// in export documents so imports can resolve the parent river by
	// its natural key.
	RiverName     string `db:"river_name" json:"river_name,omitempty"`
	RiverLocation string `db:"river_location" json:"river_location,omitempty"`
}

// NaturalKey combines river, date and duration into the identifier
// used to recognize the same trip across import operations.
func NaturalKey(riverID int64, date Date, durationHours float64) string {
	return fmt.Sprintf("%d|%s|%g", riverID, date.Format("2006-01-02"), durationHours)
}

// Key returns the trip's natural key.
func (t TripLog) Key() string {
	return NaturalKey(t.RiverID, t.TripDate, t.DurationHours)
}

// Validate reports the first reason the trip log cannot be stored.
func (t TripLog) Validate() error {
	if t.RiverID == 0 {
		return fmt.Errorf("invalid trip log: river is required")
	}
	if t.TripDate.IsZero() {
		return fmt.Errorf("invalid trip log: trip date is required")
	}
	if t.DurationHours < 0 {
		return fmt.Errorf("invalid trip log: duration must not be negative")
	}
	if t.TripRating != nil && (*t.TripRating < 1 || *t.TripRating > 5) {
		return fmt.Errorf("invalid trip log: rating must be between 1 and 5")
	}
	return nil
}

// String renders the trip for listings.
func (t TripLog) String() string {
	parts := []string{t.TripDate.Format("2006-01-02")}
	if t.RiverName != "" {
		parts = append(parts, t.RiverName)
	}
	if t.DurationHours > 0 {
		parts = append(parts, fmt.Sprintf("%gh", t.DurationHours))
	}
	return strings.Join(parts, " - ")
}
