package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Veraticus/workshop-payments/internal/common"
	"github.com/Veraticus/workshop-payments/internal/storage"
)

// Default values for settings that are not configured.
const (
	DefaultDatabasePath = "$HOME/.local/share/payments/payments.db"
	DefaultExportDir    = "."
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
)

// Config is the resolved application configuration.
type Config struct {
	DatabasePath string
	SnapshotKey  string
	ExportDir    string
	LogLevel     string
	LogFormat    string
}

// SetDefaults registers default values with viper.
func SetDefaults() {
	viper.SetDefault("database.path", DefaultDatabasePath)
	viper.SetDefault("snapshot.key", storage.DefaultSnapshotKey)
	viper.SetDefault("export.dir", DefaultExportDir)
	viper.SetDefault("logging.level", DefaultLogLevel)
	viper.SetDefault("logging.format", DefaultLogFormat)
}

// Load reads the application configuration from viper. Paths have ~ and
// environment variables expanded.
func Load() (*Config, error) {
	cfg := &Config{
		DatabasePath: viper.GetString("database.path"),
		SnapshotKey:  viper.GetString("snapshot.key"),
		ExportDir:    viper.GetString("export.dir"),
		LogLevel:     viper.GetString("logging.level"),
		LogFormat:    viper.GetString("logging.format"),
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = DefaultDatabasePath
	}
	if cfg.SnapshotKey == "" {
		cfg.SnapshotKey = storage.DefaultSnapshotKey
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = DefaultExportDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}

	cfg.DatabasePath = ExpandPath(cfg.DatabasePath)
	cfg.ExportDir = ExpandPath(cfg.ExportDir)

	if _, err := common.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("%w: invalid log format %q", common.ErrInvalidConfig, cfg.LogFormat)
	}

	return cfg, nil
}
