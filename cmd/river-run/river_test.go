package main

import (
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackworthen/river-run/internal/river"
)

func TestRiverFlags_apply(t *testing.T) {
	parse := func(t *testing.T, args ...string) (*cobra.Command, *riverFlags) {
		t.Helper()

		cmd := &cobra.Command{}
		var flags riverFlags
		flags.register(cmd)
		require.NoError(t, cmd.Flags().Parse(args))
		return cmd, &flags
	}

	t.Run("only changed flags are applied", func(t *testing.T) {
		cmd, flags := parse(t, "--difficulty", "IV", "--rating", "5")

		rating := int64(3)
		r := river.River{
			Name:           "Gauley River",
			Location:       "West Virginia",
			Notes:          "Fall release schedule",
			PersonalRating: &rating,
		}
		require.NoError(t, flags.apply(cmd, &r))

		assert.Equal(t, river.DifficultyClassIV, r.DifficultyClass)
		require.NotNil(t, r.PersonalRating)
		assert.EqualValues(t, 5, *r.PersonalRating)
		// Untouched flags leave their fields alone.
		assert.Equal(t, "Gauley River", r.Name)
		assert.Equal(t, "Fall release schedule", r.Notes)
	})

	t.Run("optional numerics stay unset without flags", func(t *testing.T) {
		cmd, flags := parse(t, "--name", "Gauley River", "--location", "West Virginia")

		var r river.River
		require.NoError(t, flags.apply(cmd, &r))

		assert.Nil(t, r.Latitude)
		assert.Nil(t, r.TypicalFlowMin)
		assert.Nil(t, r.PersonalRating)
	})

	t.Run("invalid difficulty", func(t *testing.T) {
		cmd, flags := parse(t, "--difficulty", "Class VII")

		var r river.River
		assert.ErrorContains(t, flags.apply(cmd, &r), "unknown difficulty class")
	})
}

func TestFormatDifficulty(t *testing.T) {
	color.NoColor = true

	assert.Equal(t, "Class II", formatDifficulty(river.DifficultyClassII))
	assert.Equal(t, "Class V", formatDifficulty(river.DifficultyClassV))
	assert.Equal(t, "", formatDifficulty(river.DifficultyUnknown))
}

func TestFormatFlowRange(t *testing.T) {
	min, max := int64(800), int64(2800)

	assert.Equal(t, "800 - 2800", formatFlowRange(&min, &max))
	assert.Equal(t, "800", formatFlowRange(&min, nil))
	assert.Equal(t, "2800", formatFlowRange(nil, &max))
}
