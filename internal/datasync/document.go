package datasync

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackworthen/river-run/internal/river"
	"github.com/jackworthen/river-run/internal/timeutil"
	"github.com/jackworthen/river-run/internal/trip"
)

// DocumentVersion is the schema version written by Export.
//
// Version 1 is the legacy format: no schema_version field, the export
// time in an "export_date" string, and trips identified by river name
// alone. Version 2 added schema_version, exported_at and the parent
// river's location on each trip.
const DocumentVersion = 2

// Document is the JSON export/import format.
type Document struct {
	SchemaVersion    int            `json:"schema_version"`
	ExportedAt       time.Time      `json:"exported_at,omitzero"`
	IncludesTripLogs bool           `json:"includes_trip_logs"`
	Rivers           []river.River  `json:"rivers"`
	Trips            []trip.TripLog `json:"trips,omitempty"`

	// ExportDate carries the version 1 timestamp field.
	ExportDate string `json:"export_date,omitempty"`
}

// ValidationError reports a malformed or incomplete import document.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid import document: " + e.Reason
}

// VersionError reports a document schema version with no migration path.
type VersionError struct {
	Version int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported document schema version %d (supported: 1 through %d)", e.Version, DocumentVersion)
}

// ParseDocument decodes data, migrates older document versions up to
// DocumentVersion and validates the result. It returns a
// ValidationError for malformed documents and a VersionError for
// unrecognized schema versions.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("not a valid JSON document: %v", err)}
	}

	if doc.SchemaVersion == 0 {
		// Legacy exports predate the version marker
		doc.SchemaVersion = 1
	}
	if doc.SchemaVersion < 1 || doc.SchemaVersion > DocumentVersion {
		return nil, &VersionError{Version: doc.SchemaVersion}
	}

	if doc.SchemaVersion < 2 {
		migrateDocumentV1(&doc)
	}

	if err := validateDocument(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// migrateDocumentV1 lifts a version 1 document to version 2. Additive
// only: the legacy export date moves into exported_at and the version
// marker is stamped; trips keep resolving by river name because the
// location was not recorded.
func migrateDocumentV1(doc *Document) {
	if doc.ExportDate != "" && doc.ExportedAt.IsZero() {
		if t, err := timeutil.Parse(doc.ExportDate); err == nil {
			doc.ExportedAt = t
		}
	}
	doc.ExportDate = ""
	if len(doc.Trips) > 0 {
		doc.IncludesTripLogs = true
	}
	doc.SchemaVersion = DocumentVersion
}

func validateDocument(doc *Document) error {
	if doc.Rivers == nil {
		return &ValidationError{Reason: "missing rivers"}
	}
	for i, r := range doc.Rivers {
		if err := r.Validate(); err != nil {
			return &ValidationError{Reason: fmt.Sprintf("river %d: %v", i, err)}
		}
	}
	for i, t := range doc.Trips {
		if t.RiverName == "" {
			return &ValidationError{Reason: fmt.Sprintf("trip %d: missing river name", i)}
		}
		if t.TripDate.IsZero() {
			return &ValidationError{Reason: fmt.Sprintf("trip %d: missing trip date", i)}
		}
	}
	return nil
}
