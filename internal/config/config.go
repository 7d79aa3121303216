// Package config loads application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jackworthen/river-run/internal/appdir"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
}

type StorageConfig struct {
	// DataDirectory is resolved to the OS application data directory
	// when left empty.
	DataDirectory        string `mapstructure:"data_directory" validate:"required,dir"`
	DatabaseFile         string `mapstructure:"database_file" validate:"required"`
	AttachmentsDirectory string `mapstructure:"attachments_directory" validate:"required"`
}

// DatabasePath returns the absolute path of the SQLite database file.
func (c StorageConfig) DatabasePath() string {
	return filepath.Join(c.DataDirectory, c.DatabaseFile)
}

// AttachmentsPath returns the absolute path of the attachments directory.
func (c StorageConfig) AttachmentsPath() string {
	return filepath.Join(c.DataDirectory, c.AttachmentsDirectory)
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/river-run")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("storage.database_file", "river_data.db")
	v.SetDefault("storage.attachments_directory", "attachments")

	// Bind the data directory to an environment variable as well
	if err := v.BindEnv("storage.data_directory", "RIVER_RUN_DATA_DIR"); err != nil {
		return nil, fmt.Errorf("failed to bind RIVER_RUN_DATA_DIR environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if cfg.Storage.DataDirectory == "" {
		dataDir, err := appdir.DataDir()
		if err != nil {
			return nil, fmt.Errorf("appdir.DataDir() > %w", err)
		}
		cfg.Storage.DataDirectory = dataDir
	} else if err := os.MkdirAll(cfg.Storage.DataDirectory, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", cfg.Storage.DataDirectory, err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
