// Package config loads fsd tool configuration from fsd.yml.
//
// Configuration is optional: every field has a default, and a missing
// fsd.yml is not an error. Environment variables with the FSD prefix
// override file values (e.g. FSD_BACKUP_MAX_COUNT=5).
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds tool-level defaults consumed by the CLI layer.
type Config struct {
	Backup  BackupConfig
	Migrate MigrateConfig
	Log     LogConfig
}

// BackupConfig holds backup retention defaults.
type BackupConfig struct {
	MaxAgeDays int // delete backups older than this during cleanup
	MaxCount   int // keep at most this many backups during cleanup
}

// MigrateConfig holds migration run defaults.
type MigrateConfig struct {
	AutoBackup   bool
	ConfirmSteps bool
}

// LogConfig holds logging defaults.
type LogConfig struct {
	Level string
	File  string
}

// Load reads fsd.yml from the given directory, falling back to defaults
// when the file is absent.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("fsd")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("backup.max_age_days", 30)
	v.SetDefault("backup.max_count", 10)
	v.SetDefault("migrate.auto_backup", true)
	v.SetDefault("migrate.confirm_steps", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.AutomaticEnv()
	v.SetEnvPrefix("FSD")

	if err := v.ReadInConfig(); err != nil {
		// Missing fsd.yml is fine; a present-but-broken one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read fsd.yml: %w", err)
		}
	}

	cfg := &Config{
		Backup: BackupConfig{
			MaxAgeDays: v.GetInt("backup.max_age_days"),
			MaxCount:   v.GetInt("backup.max_count"),
		},
		Migrate: MigrateConfig{
			AutoBackup:   v.GetBool("migrate.auto_backup"),
			ConfirmSteps: v.GetBool("migrate.confirm_steps"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
	}

	if cfg.Backup.MaxAgeDays < 0 {
		return nil, fmt.Errorf("backup.max_age_days must not be negative")
	}
	if cfg.Backup.MaxCount < 0 {
		return nil, fmt.Errorf("backup.max_count must not be negative")
	}

	return cfg, nil
}
