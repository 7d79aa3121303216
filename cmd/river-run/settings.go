package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackworthen/river-run/internal/settings"
)

func newSettingsCommand() *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change preferences",
	}

	settingsCmd.AddCommand(
		newSettingsShowCommand(),
		newSettingsSetCommand(),
	)
	return settingsCmd
}

func newSettingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
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

			fmt.Printf("Theme:             %s\n", prefs.Theme)
			fmt.Printf("Include trip logs: %t\n", prefs.IncludeTripLogs)
			return nil
		},
	}
}

func newSettingsSetCommand() *cobra.Command {
	var (
		theme           string
		includeTripLogs bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !cmd.Flags().Changed("theme") && !cmd.Flags().Changed("include-trip-logs") {
				return fmt.Errorf("nothing to change: pass --theme or --include-trip-logs")
			}

			_, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			repo := settings.NewDBRepository(db)
			prefs, err := repo.Load(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("theme") {
				prefs.Theme = theme
			}
			if cmd.Flags().Changed("include-trip-logs") {
				prefs.IncludeTripLogs = includeTripLogs
			}
			if err := repo.Save(ctx, prefs); err != nil {
				return err
			}
			fmt.Println("Settings updated.")
			return nil
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", `Theme ("nature" or "dark")`)
	cmd.Flags().BoolVar(&includeTripLogs, "include-trip-logs", true, "Include trip logs in export and import")
	return cmd
}
