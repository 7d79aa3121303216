package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackworthen/river-run/internal/trip"
)

func TestTripFlags_apply(t *testing.T) {
	parse := func(t *testing.T, args ...string) (*cobra.Command, *tripFlags) {
		t.Helper()

		cmd := &cobra.Command{}
		var flags tripFlags
		flags.register(cmd)
		require.NoError(t, cmd.Flags().Parse(args))
		return cmd, &flags
	}

	t.Run("date and duration", func(t *testing.T) {
		cmd, flags := parse(t, "--date", "2025-09-20", "--duration", "4.5", "--water-level", "high")

		var tl trip.TripLog
		require.NoError(t, flags.apply(cmd, &tl))

		assert.Equal(t, "2025-09-20", tl.TripDate.Format("2006-01-02"))
		assert.Equal(t, 4.5, tl.DurationHours)
		assert.Equal(t, "high", tl.WaterLevel)
		assert.Nil(t, tl.FlowRate)
		assert.Nil(t, tl.TripRating)
	})

	t.Run("invalid date", func(t *testing.T) {
		cmd, flags := parse(t, "--date", "20/09/2025")

		var tl trip.TripLog
		assert.ErrorContains(t, flags.apply(cmd, &tl), "unable to parse date")
	})
}
