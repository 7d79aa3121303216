// Package statistics aggregates display statistics over the catalog.
package statistics

import (
	"sort"

	"github.com/jackworthen/river-run/internal/river"
	"github.com/jackworthen/river-run/internal/trip"
)

// DifficultyCount is one row of the difficulty breakdown.
type DifficultyCount struct {
	Difficulty string
	Count      int
}

// Statistics holds the aggregate numbers shown on the stats view.
type Statistics struct {
	TotalRivers         int
	AverageRating       float64
	RatedRivers         int
	DifficultyBreakdown []DifficultyCount
	TotalTrips          int
	TotalHoursPaddled   float64
	RecentTrips         []trip.TripLog
}

// recentTripLimit caps the most-recent-trips list.
const recentTripLimit = 5

// Calculate computes catalog statistics from rivers and trips.
func Calculate(rivers []river.River, trips []trip.TripLog) Statistics {
	stats := Statistics{
		TotalRivers: len(rivers),
		TotalTrips:  len(trips),
	}

	var ratingSum int64
	difficulties := make(map[string]int)
	for _, r := range rivers {
		if r.PersonalRating != nil {
			ratingSum += *r.PersonalRating
			stats.RatedRivers++
		}
		difficulty := string(r.DifficultyClass)
		if difficulty == "" {
			difficulty = "Unknown"
		}
		difficulties[difficulty]++
	}
	if stats.RatedRivers > 0 {
		stats.AverageRating = float64(ratingSum) / float64(stats.RatedRivers)
	}

	for difficulty, count := range difficulties {
		stats.DifficultyBreakdown = append(stats.DifficultyBreakdown, DifficultyCount{
			Difficulty: difficulty,
			Count:      count,
		})
	}
	sort.Slice(stats.DifficultyBreakdown, func(i, j int) bool {
		return stats.DifficultyBreakdown[i].Difficulty < stats.DifficultyBreakdown[j].Difficulty
	})

	for _, t := range trips {
		stats.TotalHoursPaddled += t.DurationHours
	}

	recent := make([]trip.TripLog, len(trips))
	copy(recent, trips)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].TripDate.After(recent[j].TripDate.Time)
	})
	if len(recent) > recentTripLimit {
		recent = recent[:recentTripLimit]
	}
	stats.RecentTrips = recent

	return stats
}
