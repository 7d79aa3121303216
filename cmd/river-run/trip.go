package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackworthen/river-run/internal/river"
	"github.com/jackworthen/river-run/internal/trip"
)

func newTripCommand() *cobra.Command {
	tripCmd := &cobra.Command{
		Use:   "trip",
		Short: "Manage trip logs",
	}

	tripCmd.AddCommand(
		newTripAddCommand(),
		newTripListCommand(),
		newTripEditCommand(),
		newTripDeleteCommand(),
	)
	return tripCmd
}

type tripFlags struct {
	date       string
	companions string
	waterLevel string
	weather    string
	flowRate   int64
	duration   float64
	difficulty string
	highlights string
	challenges string
	gear       string
	rating     int64
	notes      string
}

func (f *tripFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.date, "date", "", "Trip date (YYYY-MM-DD)")
	flags.StringVar(&f.companions, "companions", "", "Who came along")
	flags.StringVar(&f.waterLevel, "water-level", "", "Water level (low, medium, high)")
	flags.StringVar(&f.weather, "weather", "", "Weather conditions")
	flags.Int64Var(&f.flowRate, "flow", 0, "Observed flow in CFS")
	flags.Float64Var(&f.duration, "duration", 0, "Duration in hours")
	flags.StringVar(&f.difficulty, "difficulty", "", "Difficulty as experienced")
	flags.StringVar(&f.highlights, "highlights", "", "Trip highlights")
	flags.StringVar(&f.challenges, "challenges", "", "Trip challenges")
	flags.StringVar(&f.gear, "gear", "", "Gear used")
	flags.Int64Var(&f.rating, "rating", 0, "Trip rating from 1 to 5")
	flags.StringVar(&f.notes, "notes", "", "Notes")
}

func (f *tripFlags) apply(cmd *cobra.Command, t *trip.TripLog) error {
	flags := cmd.Flags()
	if flags.Changed("date") {
		var date trip.Date
		if err := date.Scan(f.date); err != nil {
			return err
		}
		t.TripDate = date
	}
	if flags.Changed("companions") {
		t.Companions = f.companions
	}
	if flags.Changed("water-level") {
		t.WaterLevel = f.waterLevel
	}
	if flags.Changed("weather") {
		t.WeatherConditions = f.weather
	}
	if flags.Changed("flow") {
		t.FlowRate = &f.flowRate
	}
	if flags.Changed("duration") {
		t.DurationHours = f.duration
	}
	if flags.Changed("difficulty") {
		t.DifficultyExperienced = f.difficulty
	}
	if flags.Changed("highlights") {
		t.Highlights = f.highlights
	}
	if flags.Changed("challenges") {
		t.Challenges = f.challenges
	}
	if flags.Changed("gear") {
		t.GearUsed = f.gear
	}
	if flags.Changed("rating") {
		t.TripRating = &f.rating
	}
	if flags.Changed("notes") {
		t.Notes = f.notes
	}
	return nil
}

func newTripAddCommand() *cobra.Command {
	var flags tripFlags

	cmd := &cobra.Command{
		Use:   "add <river-id>",
		Short: "Log a trip on a river",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			riverID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid river id %q", args[0])
			}

			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			r, err := river.NewDBRepository(db).FindByID(ctx, riverID)
			if err != nil {
				return err
			}

			t := trip.TripLog{RiverID: r.ID}
			if err := flags.apply(cmd, &t); err != nil {
				return err
			}
			if err := t.Validate(); err != nil {
				return err
			}

			if err := trip.NewDBRepository(db).Create(ctx, &t); err != nil {
				return fmt.Errorf("repo.Create() > %w", err)
			}
			fmt.Printf("Logged trip on %q for %s (id %d)\n", r.Name, t.TripDate.Format("2006-01-02"), t.ID)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newTripListCommand() *cobra.Command {
	var riverID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trip logs, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			repo := trip.NewDBRepository(db)
			var trips []trip.TripLog
			if riverID != 0 {
				trips, err = repo.FindByRiver(ctx, riverID)
			} else {
				trips, err = repo.FindAll(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list trip logs: %w", err)
			}

			if len(trips) == 0 {
				fmt.Println("No trip logs found.")
				return nil
			}
			for _, t := range trips {
				fmt.Printf("%4d  %s\n", t.ID, t.String())
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&riverID, "river-id", 0, "Only list trips on this river")
	return cmd
}

func newTripEditCommand() *cobra.Command {
	var flags tripFlags

	cmd := &cobra.Command{
		Use:   "edit <trip-id>",
		Short: "Edit a trip log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid trip id %q", args[0])
			}

			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			repo := trip.NewDBRepository(db)
			t, err := repo.FindByID(ctx, id)
			if err != nil {
				return err
			}

			if err := flags.apply(cmd, t); err != nil {
				return err
			}
			if err := t.Validate(); err != nil {
				return err
			}
			if err := repo.Update(ctx, t); err != nil {
				return fmt.Errorf("repo.Update() > %w", err)
			}
			fmt.Printf("Updated trip log %d\n", t.ID)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newTripDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trip-id>",
		Short: "Delete a trip log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid trip id %q", args[0])
			}

			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := trip.NewDBRepository(db).Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted trip log %d\n", id)
			return nil
		},
	}
}
