// Package river provides the river domain model and repository.
package river

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jackworthen/river-run/internal/timeutil"
)

// Difficulty is the international scale of river difficulty.
type Difficulty string

const (
	DifficultyUnknown  Difficulty = ""
	DifficultyClassI   Difficulty = "Class I"
	DifficultyClassII  Difficulty = "Class II"
	DifficultyClassIII Difficulty = "Class III"
	DifficultyClassIV  Difficulty = "Class IV"
	DifficultyClassV   Difficulty = "Class V"
	DifficultyClassVI  Difficulty = "Class VI"
)

// Difficulties lists the known classes in ascending order.
var Difficulties = []Difficulty{
	DifficultyClassI,
	DifficultyClassII,
	DifficultyClassIII,
	DifficultyClassIV,
	DifficultyClassV,
	DifficultyClassVI,
}

// ParseDifficulty parses a difficulty class. It accepts the full form
// ("Class III") and the bare numeral ("III"). The empty string is the
// unknown class.
func ParseDifficulty(s string) (Difficulty, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return DifficultyUnknown, nil
	}
	for _, d := range Difficulties {
		if strings.EqualFold(trimmed, string(d)) {
			return d, nil
		}
		if strings.EqualFold(trimmed, strings.TrimPrefix(string(d), "Class ")) {
			return d, nil
		}
	}
	return DifficultyUnknown, fmt.Errorf("unknown difficulty class %q", s)
}

// River represents a whitewater river entry. The row timestamps are
// lenient on parse because exported documents carry them in several
// historical forms.
type River struct {
	ID                int64              `db:"id" json:"id,omitempty"`
	Name              string             `db:"name" json:"name" validate:"required"`
	Location          string             `db:"location" json:"location" validate:"required"`
	Region            string             `db:"region" json:"region,omitempty"`
	Latitude          *float64           `db:"latitude" json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude         *float64           `db:"longitude" json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	DifficultyClass   Difficulty         `db:"difficulty_class" json:"difficulty_class,omitempty"`
	LengthMiles       *float64           `db:"length_miles" json:"length_miles,omitempty" validate:"omitempty,min=0"`
	TypicalFlowMin    *int64             `db:"typical_flow_min" json:"typical_flow_min,omitempty" validate:"omitempty,min=0"`
	TypicalFlowMax    *int64             `db:"typical_flow_max" json:"typical_flow_max,omitempty" validate:"omitempty,min=0"`
	TypicalDepthFeet  *float64           `db:"typical_depth_feet" json:"typical_depth_feet,omitempty" validate:"omitempty,min=0"`
	PutInLocation     string             `db:"put_in_location" json:"put_in_location,omitempty"`
	TakeOutLocation   string             `db:"take_out_location" json:"take_out_location,omitempty"`
	ShuttleInfo       string             `db:"shuttle_info" json:"shuttle_info,omitempty"`
	ParkingDetails    string             `db:"parking_details" json:"parking_details,omitempty"`
	BestSeasons       string             `db:"best_seasons" json:"best_seasons,omitempty"`
	WaterLevelSource  string             `db:"water_level_source" json:"water_level_source,omitempty"`
	Hazards           string             `db:"hazards" json:"hazards,omitempty"`
	Portages          string             `db:"portages" json:"portages,omitempty"`
	EmergencyContacts string             `db:"emergency_contacts" json:"emergency_contacts,omitempty"`
	Description       string             `db:"description" json:"description,omitempty"`
	PersonalRating    *int64             `db:"personal_rating" json:"personal_rating,omitempty" validate:"omitempty,min=1,max=5"`
	Notes             string             `db:"notes" json:"notes,omitempty"`
	Tags              string             `db:"tags" json:"tags,omitempty"`
	DateAdded         timeutil.Timestamp `db:"date_added" json:"date_added,omitzero"`
	LastUpdated       timeutil.Timestamp `db:"last_updated" json:"last_updated,omitzero"`
}

// NaturalKey combines name and location into the identifier used to
// recognize the same river across import operations.
func NaturalKey(name, location string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(location))
}

// Key returns the river's natural key.
func (r River) Key() string {
	return NaturalKey(r.Name, r.Location)
}

var validate = validator.New()

// Validate reports the first reason the river cannot be stored.
func (r River) Validate() error {
	if err := validate.Struct(r); err != nil {
		errs := err.(validator.ValidationErrors)
		return fmt.Errorf("invalid river: %s", describeFieldError(errs[0]))
	}
	if _, err := ParseDifficulty(string(r.DifficultyClass)); err != nil {
		return fmt.Errorf("invalid river: %w", err)
	}
	if r.TypicalFlowMin != nil && r.TypicalFlowMax != nil && *r.TypicalFlowMin > *r.TypicalFlowMax {
		return fmt.Errorf("invalid river: typical flow minimum %d exceeds maximum %d", *r.TypicalFlowMin, *r.TypicalFlowMax)
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", strings.ToLower(fe.Field()))
	case "min":
		return fmt.Sprintf("%s must be at least %s", strings.ToLower(fe.Field()), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", strings.ToLower(fe.Field()), fe.Param())
	}
	return fe.Error()
}
