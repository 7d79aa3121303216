// Package timeutil provides a lenient timestamp type for interchange
// documents.
package timeutil

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp is a time.Time that tolerates the forms row timestamps
// take in exported documents: RFC3339, isoformat with fractional
// seconds, and SQLite's space-separated DATETIME.
type Timestamp struct {
	time.Time
}

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse parses value against the known timestamp layouts.
func Parse(value string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp %q", value)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("json.Unmarshal(timestamp) > %w", err)
	}
	if value == "" {
		ts.Time = time.Time{}
		return nil
	}
	parsed, err := Parse(value)
	if err != nil {
		return err
	}
	ts.Time = parsed
	return nil
}

// Value implements the driver.Valuer interface.
func (ts Timestamp) Value() (driver.Value, error) {
	return ts.Time, nil
}

// Scan implements the sql.Scanner interface.
func (ts *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		ts.Time = time.Time{}
		return nil
	case time.Time:
		ts.Time = v
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		ts.Time = parsed
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		ts.Time = parsed
		return nil
	}
	return fmt.Errorf("unsupported timestamp source type %T", src)
}
