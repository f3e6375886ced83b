package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Host            string
	Port            string
	ShutdownTimeout time.Duration

	// Storage settings
	DatabasePath    string
	PreferencesPath string
	AttachmentsDir  string

	// Largest accepted attachment in bytes
	AttachmentMaxBytes int64

	// Logging settings
	LogLevel  string
	LogFormat string

	// Locale used when no language preference has been stored
	DefaultLanguage string
}

// Load reads configuration from the environment, after merging a .env file
// if one exists in the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Not an error if .env doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("HOST", "127.0.0.1")
	v.SetDefault("PORT", "8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("DATABASE_PATH", "./data/smartlawyer_database.db")
	v.SetDefault("PREFERENCES_PATH", "./data/user_preferences.db")
	v.SetDefault("ATTACHMENTS_DIR", "./data/files")
	v.SetDefault("ATTACHMENT_MAX_BYTES", 25<<20)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DEFAULT_LANGUAGE", "ar")
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Host:            v.GetString("HOST"),
		Port:            v.GetString("PORT"),
		DatabasePath:    v.GetString("DATABASE_PATH"),
		PreferencesPath: v.GetString("PREFERENCES_PATH"),
		AttachmentsDir:  v.GetString("ATTACHMENTS_DIR"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
		DefaultLanguage: v.GetString("DEFAULT_LANGUAGE"),
	}

	timeout, err := time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = timeout

	cfg.AttachmentMaxBytes = v.GetInt64("ATTACHMENT_MAX_BYTES")
	if cfg.AttachmentMaxBytes <= 0 {
		return nil, fmt.Errorf("ATTACHMENT_MAX_BYTES must be positive")
	}

	if cfg.DatabasePath == cfg.PreferencesPath {
		return nil, fmt.Errorf("DATABASE_PATH and PREFERENCES_PATH must differ")
	}

	return cfg, nil
}
