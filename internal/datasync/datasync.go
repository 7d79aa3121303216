// Package datasync provides JSON export and import with duplicate detection.
package datasync

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jackworthen/river-run/internal/river"
	"github.com/jackworthen/river-run/internal/timeutil"
	"github.com/jackworthen/river-run/internal/trip"
)

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	RiversNew     int
	RiversSkipped int
	TripsNew      int
	TripsSkipped  int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	// DryRun previews counts without committing anything.
	DryRun bool
	// IncludeTripLogs mirrors the user setting: when off, trips in the
	// document are counted as skipped.
	IncludeTripLogs bool
}

// Importer writes documents into the store. The whole import runs in
// one transaction, so a failing import commits nothing.
type Importer struct {
	db     *sqlx.DB
	writer io.Writer
}

// NewImporter creates a new Importer reporting progress to writer.
func NewImporter(db *sqlx.DB, writer io.Writer) *Importer {
	return &Importer{db: db, writer: writer}
}

// Import inserts the document's rivers and trips, skipping records
// whose natural key already exists in the store or earlier in the same
// document.
func (imp *Importer) Import(ctx context.Context, doc *Document, opts ImportOptions) (*ImportResult, error) {
	tx, err := imp.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer tx.Rollback()

	riverRepo := river.NewDBRepository(tx)
	tripRepo := trip.NewDBRepository(tx)

	var result ImportResult

	rivers, err := imp.importRivers(ctx, riverRepo, doc.Rivers, &result)
	if err != nil {
		return nil, fmt.Errorf("importRivers() > %w", err)
	}

	if len(doc.Trips) > 0 {
		if opts.IncludeTripLogs {
			if err := imp.importTrips(ctx, tripRepo, doc.Trips, rivers, &result); err != nil {
				return nil, fmt.Errorf("importTrips() > %w", err)
			}
		} else {
			result.TripsSkipped = len(doc.Trips)
			fmt.Fprintf(imp.writer, "  [SKIP]  %d trip log(s): trip log import is disabled in settings\n", len(doc.Trips))
		}
	}

	if opts.DryRun {
		return &result, nil
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("tx.Commit() > %w", err)
	}
	return &result, nil
}

// riverIndex resolves parent rivers for imported trips. Version 1
// documents carry only the river name, so both keyings are kept.
type riverIndex struct {
	byKey  map[string]int64
	byName map[string]int64
}

// add indexes the river. When several rivers share a name, the one
// indexed last wins the name-only lookup.
func (idx *riverIndex) add(r river.River) {
	idx.byKey[r.Key()] = r.ID
	idx.byName[strings.ToLower(strings.TrimSpace(r.Name))] = r.ID
}

func (idx *riverIndex) resolve(name, location string) (int64, bool) {
	if location != "" {
		id, ok := idx.byKey[river.NaturalKey(name, location)]
		return id, ok
	}
	id, ok := idx.byName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

func (imp *Importer) importRivers(ctx context.Context, repo river.Repository, rivers []river.River, result *ImportResult) (*riverIndex, error) {
	existing, err := repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.FindAll() > %w", err)
	}

	index := &riverIndex{
		byKey:  make(map[string]int64, len(existing)),
		byName: make(map[string]int64, len(existing)),
	}
	for _, r := range existing {
		index.add(r)
	}

	for _, r := range rivers {
		if _, ok := index.byKey[r.Key()]; ok {
			fmt.Fprintf(imp.writer, "  [SKIP]  river %q (%s)\n", r.Name, r.Location)
			result.RiversSkipped++
			continue
		}

		// The store assigns fresh identifiers and timestamps
		r.ID = 0
		r.DateAdded = timeutil.Timestamp{}
		r.LastUpdated = timeutil.Timestamp{}
		if err := repo.Create(ctx, &r); err != nil {
			return nil, fmt.Errorf("repo.Create(river %q) > %w", r.Name, err)
		}
		index.add(r)
		fmt.Fprintf(imp.writer, "  [NEW]   river %q (%s)\n", r.Name, r.Location)
		result.RiversNew++
	}

	return index, nil
}

func (imp *Importer) importTrips(ctx context.Context, repo trip.Repository, trips []trip.TripLog, rivers *riverIndex, result *ImportResult) error {
	seen := make(map[string]struct{}, len(trips))

	for _, t := range trips {
		riverID, ok := rivers.resolve(t.RiverName, t.RiverLocation)
		if !ok {
			fmt.Fprintf(imp.writer, "  [SKIP]  trip %s: river %q not found\n", t.TripDate.Format("2006-01-02"), t.RiverName)
			result.TripsSkipped++
			continue
		}

		key := trip.NaturalKey(riverID, t.TripDate, t.DurationHours)
		if _, ok := seen[key]; ok {
			result.TripsSkipped++
			continue
		}
		seen[key] = struct{}{}

		existing, err := repo.FindByNaturalKey(ctx, riverID, t.TripDate, t.DurationHours)
		if err != nil {
			return fmt.Errorf("repo.FindByNaturalKey() > %w", err)
		}
		if existing != nil {
			fmt.Fprintf(imp.writer, "  [SKIP]  trip %s on %q\n", t.TripDate.Format("2006-01-02"), t.RiverName)
			result.TripsSkipped++
			continue
		}

		t.ID = 0
		t.RiverID = riverID
		t.CreatedDate = timeutil.Timestamp{}
		if err := repo.Create(ctx, &t); err != nil {
			return fmt.Errorf("repo.Create(trip %s) > %w", t.TripDate.Format("2006-01-02"), err)
		}
		fmt.Fprintf(imp.writer, "  [NEW]   trip %s on %q\n", t.TripDate.Format("2006-01-02"), t.RiverName)
		result.TripsNew++
	}

	return nil
}

// Exporter reads the store into a document.
type Exporter struct {
	riverRepo river.Repository
	tripRepo  trip.Repository
}

// NewExporter creates a new Exporter.
func NewExporter(riverRepo river.Repository, tripRepo trip.Repository) *Exporter {
	return &Exporter{riverRepo: riverRepo, tripRepo: tripRepo}
}

// Export reads all rivers, and all trip logs when includeTripLogs is
// on, into a document of the current schema version.
func (e *Exporter) Export(ctx context.Context, includeTripLogs bool) (*Document, error) {
	rivers, err := e.riverRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("riverRepo.FindAll() > %w", err)
	}
	if rivers == nil {
		rivers = []river.River{}
	}

	doc := &Document{
		SchemaVersion:    DocumentVersion,
		ExportedAt:       time.Now().UTC(),
		IncludesTripLogs: includeTripLogs,
		Rivers:           rivers,
	}

	if includeTripLogs {
		trips, err := e.tripRepo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("tripRepo.FindAll() > %w", err)
		}
		doc.Trips = trips
	}

	return doc, nil
}
