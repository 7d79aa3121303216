package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackworthen/river-run/internal/settings"
	"github.com/jackworthen/river-run/internal/testutil"
)

func TestSettings_Validate(t *testing.T) {
	assert.NoError(t, settings.Settings{Theme: settings.ThemeNature}.Validate())
	assert.NoError(t, settings.Settings{Theme: settings.ThemeDark}.Validate())
	assert.ErrorContains(t, settings.Settings{Theme: "neon"}.Validate(), `unknown theme "neon"`)
}

func TestDBRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := settings.NewDBRepository(db)

	t.Run("migrated store has defaults", func(t *testing.T) {
		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, settings.ThemeNature, got.Theme)
		assert.True(t, got.IncludeTripLogs)
	})

	t.Run("save and reload", func(t *testing.T) {
		prefs, err := repo.Load(ctx)
		require.NoError(t, err)

		prefs.Theme = settings.ThemeDark
		prefs.IncludeTripLogs = false
		require.NoError(t, repo.Save(ctx, prefs))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, settings.ThemeDark, got.Theme)
		assert.False(t, got.IncludeTripLogs)
	})

	t.Run("invalid settings are rejected", func(t *testing.T) {
		err := repo.Save(ctx, &settings.Settings{Theme: "neon"})
		assert.ErrorContains(t, err, "unknown theme")
	})
}
