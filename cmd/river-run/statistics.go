package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jackworthen/river-run/internal/river"
	"github.com/jackworthen/river-run/internal/statistics"
	"github.com/jackworthen/river-run/internal/trip"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			rivers, err := river.NewDBRepository(db).FindAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to load rivers: %w", err)
			}
			trips, err := trip.NewDBRepository(db).FindAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to load trip logs: %w", err)
			}

			stats := statistics.Calculate(rivers, trips)

			color.New(color.Bold).Println("Catalog")
			fmt.Printf("  Rivers:        %d\n", stats.TotalRivers)
			if stats.RatedRivers > 0 {
				fmt.Printf("  Avg rating:    %.1f/5 (%d rated)\n", stats.AverageRating, stats.RatedRivers)
			}
			if len(stats.DifficultyBreakdown) > 0 {
				fmt.Println("  By difficulty:")
				for _, row := range stats.DifficultyBreakdown {
					fmt.Printf("    %-12s %d\n", formatDifficulty(river.Difficulty(row.Difficulty)), row.Count)
				}
			}

			fmt.Println()
			color.New(color.Bold).Println("Trips")
			fmt.Printf("  Logged:        %d\n", stats.TotalTrips)
			fmt.Printf("  Hours paddled: %.1f\n", stats.TotalHoursPaddled)
			if len(stats.RecentTrips) > 0 {
				fmt.Println("  Most recent:")
				for _, t := range stats.RecentTrips {
					fmt.Printf("    %s\n", t.String())
				}
			}
			return nil
		},
	}
}
