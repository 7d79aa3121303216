package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jackworthen/river-run/internal/attachment"
	"github.com/jackworthen/river-run/internal/river"
	"github.com/jackworthen/river-run/internal/trip"
)

func newRiverCommand() *cobra.Command {
	riverCmd := &cobra.Command{
		Use:   "river",
		Short: "Manage rivers in the catalog",
	}

	riverCmd.AddCommand(
		newRiverAddCommand(),
		newRiverListCommand(),
		newRiverShowCommand(),
		newRiverEditCommand(),
		newRiverDeleteCommand(),
	)
	return riverCmd
}

// riverFlags covers every editable river field. The same set serves
// add and edit; edit only applies flags the user changed.
type riverFlags struct {
	name        string
	location    string
	region      string
	latitude    float64
	longitude   float64
	difficulty  string
	lengthMiles float64
	flowMin     int64
	flowMax     int64
	depthFeet   float64
	putIn       string
	takeOut     string
	shuttle     string
	parking     string
	seasons     string
	gaugeSource string
	hazards     string
	portages    string
	emergency   string
	description string
	rating      int64
	notes       string
	tags        string
}

func (f *riverFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.name, "name", "", "River name")
	flags.StringVar(&f.location, "location", "", "River location")
	flags.StringVar(&f.region, "region", "", "Region")
	flags.Float64Var(&f.latitude, "latitude", 0, "Latitude of the put-in")
	flags.Float64Var(&f.longitude, "longitude", 0, "Longitude of the put-in")
	flags.StringVar(&f.difficulty, "difficulty", "", `Difficulty class ("Class I" through "Class VI")`)
	flags.Float64Var(&f.lengthMiles, "length", 0, "Run length in miles")
	flags.Int64Var(&f.flowMin, "flow-min", 0, "Typical minimum flow in CFS")
	flags.Int64Var(&f.flowMax, "flow-max", 0, "Typical maximum flow in CFS")
	flags.Float64Var(&f.depthFeet, "depth", 0, "Typical water depth in feet")
	flags.StringVar(&f.putIn, "put-in", "", "Put-in location")
	flags.StringVar(&f.takeOut, "take-out", "", "Take-out location")
	flags.StringVar(&f.shuttle, "shuttle", "", "Shuttle information")
	flags.StringVar(&f.parking, "parking", "", "Parking details")
	flags.StringVar(&f.seasons, "seasons", "", "Best seasons")
	flags.StringVar(&f.gaugeSource, "gauge", "", "Water level gauge source")
	flags.StringVar(&f.hazards, "hazards", "", "Known hazards")
	flags.StringVar(&f.portages, "portages", "", "Required portages")
	flags.StringVar(&f.emergency, "emergency", "", "Emergency contacts")
	flags.StringVar(&f.description, "description", "", "Description")
	flags.Int64Var(&f.rating, "rating", 0, "Personal rating from 1 to 5")
	flags.StringVar(&f.notes, "notes", "", "Notes")
	flags.StringVar(&f.tags, "tags", "", "Comma separated tags")
}

func (f *riverFlags) apply(cmd *cobra.Command, r *river.River) error {
	flags := cmd.Flags()
	if flags.Changed("name") {
		r.Name = f.name
	}
	if flags.Changed("location") {
		r.Location = f.location
	}
	if flags.Changed("region") {
		r.Region = f.region
	}
	if flags.Changed("latitude") {
		r.Latitude = &f.latitude
	}
	if flags.Changed("longitude") {
		r.Longitude = &f.longitude
	}
	if flags.Changed("difficulty") {
		difficulty, err := river.ParseDifficulty(f.difficulty)
		if err != nil {
			return err
		}
		r.DifficultyClass = difficulty
	}
	if flags.Changed("length") {
		r.LengthMiles = &f.lengthMiles
	}
	if flags.Changed("flow-min") {
		r.TypicalFlowMin = &f.flowMin
	}
	if flags.Changed("flow-max") {
		r.TypicalFlowMax = &f.flowMax
	}
	if flags.Changed("depth") {
		r.TypicalDepthFeet = &f.depthFeet
	}
	if flags.Changed("put-in") {
		r.PutInLocation = f.putIn
	}
	if flags.Changed("take-out") {
		r.TakeOutLocation = f.takeOut
	}
	if flags.Changed("shuttle") {
		r.ShuttleInfo = f.shuttle
	}
	if flags.Changed("parking") {
		r.ParkingDetails = f.parking
	}
	if flags.Changed("seasons") {
		r.BestSeasons = f.seasons
	}
	if flags.Changed("gauge") {
		r.WaterLevelSource = f.gaugeSource
	}
	if flags.Changed("hazards") {
		r.Hazards = f.hazards
	}
	if flags.Changed("portages") {
		r.Portages = f.portages
	}
	if flags.Changed("emergency") {
		r.EmergencyContacts = f.emergency
	}
	if flags.Changed("description") {
		r.Description = f.description
	}
	if flags.Changed("rating") {
		r.PersonalRating = &f.rating
	}
	if flags.Changed("notes") {
		r.Notes = f.notes
	}
	if flags.Changed("tags") {
		r.Tags = f.tags
	}
	return nil
}

func newRiverAddCommand() *cobra.Command {
	var flags riverFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a river to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			var r river.River
			if err := flags.apply(cmd, &r); err != nil {
				return err
			}
			if err := r.Validate(); err != nil {
				return err
			}

			repo := river.NewDBRepository(db)
			existing, err := repo.FindByNameAndLocation(ctx, r.Name, r.Location)
			if err != nil {
				return fmt.Errorf("repo.FindByNameAndLocation() > %w", err)
			}
			if existing != nil {
				return fmt.Errorf("river %q at %q already exists (id %d)", r.Name, r.Location, existing.ID)
			}

			if err := repo.Create(ctx, &r); err != nil {
				return fmt.Errorf("repo.Create() > %w", err)
			}
			fmt.Printf("Added river %q (id %d)\n", r.Name, r.ID)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newRiverListCommand() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rivers in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			repo := river.NewDBRepository(db)
			var rivers []river.River
			if search != "" {
				rivers, err = repo.Search(ctx, search)
			} else {
				rivers, err = repo.FindAll(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list rivers: %w", err)
			}

			if len(rivers) == 0 {
				fmt.Println("No rivers found.")
				return nil
			}
			for _, r := range rivers {
				fmt.Printf("%4d  %-30s %-25s %s\n", r.ID, r.Name, r.Location, formatDifficulty(r.DifficultyClass))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Filter by name, location, region, difficulty or tag")
	return cmd
}

func newRiverShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <river-id>",
		Short: "Show a river's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid river id %q", args[0])
			}

			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			r, err := river.NewDBRepository(db).FindByID(ctx, id)
			if err != nil {
				return err
			}

			printRiver(r)

			trips, err := trip.NewDBRepository(db).FindByRiver(ctx, r.ID)
			if err != nil {
				return fmt.Errorf("failed to load trip logs: %w", err)
			}
			if len(trips) > 0 {
				fmt.Printf("\nTrip logs (%d):\n", len(trips))
				for _, t := range trips {
					fmt.Printf("  %4d  %s\n", t.ID, t.String())
				}
			}

			attachments, err := attachment.NewDBRepository(db).FindByRiver(ctx, r.ID)
			if err != nil {
				return fmt.Errorf("failed to load attachments: %w", err)
			}
			if len(attachments) > 0 {
				fmt.Printf("\nAttachments (%d):\n", len(attachments))
				for _, a := range attachments {
					fmt.Printf("  %4d  %s (%s)\n", a.ID, a.FileName, a.FilePath)
				}
			}
			return nil
		},
	}
}

func newRiverEditCommand() *cobra.Command {
	var flags riverFlags

	cmd := &cobra.Command{
		Use:   "edit <river-id>",
		Short: "Edit a river",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid river id %q", args[0])
			}

			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			repo := river.NewDBRepository(db)
			r, err := repo.FindByID(ctx, id)
			if err != nil {
				return err
			}

			if err := flags.apply(cmd, r); err != nil {
				return err
			}
			if err := r.Validate(); err != nil {
				return err
			}
			if err := repo.Update(ctx, r); err != nil {
				return fmt.Errorf("repo.Update() > %w", err)
			}
			fmt.Printf("Updated river %q (id %d)\n", r.Name, r.ID)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newRiverDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <river-id>",
		Short: "Delete a river and its trip logs and attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid river id %q", args[0])
			}

			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			r, err := river.NewDBRepository(db).FindByID(ctx, id)
			if err != nil {
				return err
			}
			if err := river.NewDBRepository(db).Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted river %q and its trip logs and attachments\n", r.Name)
			return nil
		},
	}
}

// formatDifficulty colors a difficulty class the way the stats view
// groups them: easy water green, Class III orange, the hard classes
// red, Class VI magenta.
func formatDifficulty(d river.Difficulty) string {
	switch d {
	case river.DifficultyClassI, river.DifficultyClassII:
		return color.GreenString(string(d))
	case river.DifficultyClassIII:
		return color.YellowString(string(d))
	case river.DifficultyClassIV, river.DifficultyClassV:
		return color.RedString(string(d))
	case river.DifficultyClassVI:
		return color.MagentaString(string(d))
	}
	return string(d)
}

func printRiver(r *river.River) {
	fmt.Printf("%s (id %d)\n", r.Name, r.ID)
	fmt.Printf("  Location:    %s\n", r.Location)
	if r.Region != "" {
		fmt.Printf("  Region:      %s\n", r.Region)
	}
	if r.DifficultyClass != river.DifficultyUnknown {
		fmt.Printf("  Difficulty:  %s\n", formatDifficulty(r.DifficultyClass))
	}
	if r.Latitude != nil && r.Longitude != nil {
		fmt.Printf("  Coordinates: %.6f, %.6f\n", *r.Latitude, *r.Longitude)
	}
	if r.LengthMiles != nil {
		fmt.Printf("  Length:      %.1f miles\n", *r.LengthMiles)
	}
	if r.TypicalFlowMin != nil || r.TypicalFlowMax != nil {
		fmt.Printf("  Flow:        %s CFS\n", formatFlowRange(r.TypicalFlowMin, r.TypicalFlowMax))
	}
	if r.TypicalDepthFeet != nil {
		fmt.Printf("  Depth:       %.1f feet\n", *r.TypicalDepthFeet)
	}
	for _, field := range []struct{ label, value string }{
		{"Put-in", r.PutInLocation},
		{"Take-out", r.TakeOutLocation},
		{"Shuttle", r.ShuttleInfo},
		{"Parking", r.ParkingDetails},
		{"Seasons", r.BestSeasons},
		{"Gauge", r.WaterLevelSource},
		{"Hazards", r.Hazards},
		{"Portages", r.Portages},
		{"Emergency", r.EmergencyContacts},
		{"Description", r.Description},
		{"Notes", r.Notes},
		{"Tags", r.Tags},
	} {
		if field.value != "" {
			fmt.Printf("  %-12s %s\n", field.label+":", field.value)
		}
	}
	if r.PersonalRating != nil {
		fmt.Printf("  Rating:      %d/5\n", *r.PersonalRating)
	}
}

func formatFlowRange(min, max *int64) string {
	var parts []string
	if min != nil {
		parts = append(parts, strconv.FormatInt(*min, 10))
	}
	if max != nil {
		parts = append(parts, strconv.FormatInt(*max, 10))
	}
	return strings.Join(parts, " - ")
}
