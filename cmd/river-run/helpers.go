package main

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/jackworthen/river-run/internal/appdir"
	"github.com/jackworthen/river-run/internal/config"
	"github.com/jackworthen/river-run/internal/database"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// openStore loads the configuration and opens the migrated store. Data
// kept next to the executable by old releases is relocated first.
func openStore() (*config.Config, *sqlx.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	moved, err := appdir.RelocateLegacyData(cfg.Storage.DataDirectory, cfg.Storage.DatabaseFile, cfg.Storage.AttachmentsDirectory)
	if err != nil {
		return nil, nil, fmt.Errorf("appdir.RelocateLegacyData() > %w", err)
	}
	if moved {
		slog.Info("relocated legacy data into the application data directory", "directory", cfg.Storage.DataDirectory)
	}

	db, err := database.Open(cfg.Storage.DatabasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open() > %w", err)
	}
	return cfg, db, nil
}
