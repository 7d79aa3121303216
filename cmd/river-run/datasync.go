package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackworthen/river-run/internal/datasync"
	"github.com/jackworthen/river-run/internal/river"
	"github.com/jackworthen/river-run/internal/settings"
	"github.com/jackworthen/river-run/internal/trip"
)

func newExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			prefs, err := settings.NewDBRepository(db).Load(ctx)
			if err != nil {
				return err
			}

			exporter := datasync.NewExporter(river.NewDBRepository(db), trip.NewDBRepository(db))
			doc, err := exporter.Export(ctx, prefs.IncludeTripLogs)
			if err != nil {
				return fmt.Errorf("exporter.Export() > %w", err)
			}

			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("json.MarshalIndent() > %w", err)
			}

			if output == "" {
				output = fmt.Sprintf("whitewater_data_%s.json", time.Now().Format("20060102"))
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("os.WriteFile(%s) > %w", output, err)
			}

			fmt.Printf("Exported %d river(s)", len(doc.Rivers))
			if prefs.IncludeTripLogs {
				fmt.Printf(" and %d trip log(s)", len(doc.Trips))
			}
			fmt.Printf(" to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default whitewater_data_<date>.json)")
	return cmd
}

func newImportCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import rivers and trip logs from a JSON file",
		Long: `Import rivers and trip logs from a JSON file.

Records already in the catalog are recognized by their natural key
(name and location for rivers; river, date and duration for trip logs)
and skipped. A file that fails validation imports nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("os.ReadFile(%s) > %w", args[0], err)
			}

			doc, err := datasync.ParseDocument(data)
			if err != nil {
				return err
			}

			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			prefs, err := settings.NewDBRepository(db).Load(ctx)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Println("Dry run: nothing will be written.")
			}
			result, err := datasync.NewImporter(db, cmd.OutOrStdout()).Import(ctx, doc, datasync.ImportOptions{
				DryRun:          dryRun,
				IncludeTripLogs: prefs.IncludeTripLogs,
			})
			if err != nil {
				return fmt.Errorf("importer.Import() > %w", err)
			}

			fmt.Printf("Rivers:    %d new, %d skipped\n", result.RiversNew, result.RiversSkipped)
			fmt.Printf("Trip logs: %d new, %d skipped\n", result.TripsNew, result.TripsSkipped)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be imported without writing")
	return cmd
}
