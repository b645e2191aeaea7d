// Package config loads the dashboard server configuration from the
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/nissili/inventory-dashboard/locale"
	"github.com/nissili/inventory-dashboard/logger"
)

// DefaultDBPath is the SQLite file shared by the load command and the server.
const DefaultDBPath = "nissili_inventory.db"

// DefaultAlertTo is the recipient shown on low-stock alerts.
const DefaultAlertTo = "inventory-team@nissili.com"

// Config represents the full application configuration surface.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Log    LogConfig
	Alert  AlertConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port        string
	DefaultLang locale.Lang
}

// StoreConfig points at the inventory database.
type StoreConfig struct {
	Path string
}

// LogConfig selects level and encoding for the zerolog logger.
type LogConfig struct {
	Level  string
	Format logger.Format
}

// AlertConfig holds the low-stock alert job settings. An empty CronSpec
// disables the job.
type AlertConfig struct {
	CronSpec string
	To       string
	Lang     locale.Lang
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine; the environment may carry everything.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getenvWithDefault("APP_PORT", "8080"),
			DefaultLang: parseLang(os.Getenv("DEFAULT_LANG")),
		},
		Store: StoreConfig{
			Path: getenvWithDefault("DB_PATH", DefaultDBPath),
		},
		Log: LogConfig{
			Level:  getenvWithDefault("LOG_LEVEL", "info"),
			Format: logger.Format(getenvWithDefault("LOG_FORMAT", string(logger.FormatConsole))),
		},
		Alert: AlertConfig{
			CronSpec: lookupWithDefault("ALERT_CRON", "@hourly"),
			To:       getenvWithDefault("ALERT_TO", DefaultAlertTo),
			Lang:     parseLang(os.Getenv("ALERT_LANG")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("APP_PORT %q is not a valid port", c.Server.Port)
	}

	if c.Store.Path == "" {
		return errors.New("DB_PATH must not be empty")
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	switch c.Log.Format {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return fmt.Errorf("LOG_FORMAT %q must be console or json", c.Log.Format)
	}

	if c.Alert.CronSpec != "" {
		if _, err := cron.ParseStandard(c.Alert.CronSpec); err != nil {
			return fmt.Errorf("ALERT_CRON %q: %w", c.Alert.CronSpec, err)
		}
		if c.Alert.To == "" {
			return errors.New("ALERT_TO must be provided when ALERT_CRON is set")
		}
	}

	return nil
}

// AlertsEnabled reports whether the alert job should be scheduled.
func (c *Config) AlertsEnabled() bool {
	return c.Alert.CronSpec != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// lookupWithDefault keeps an explicitly empty value, so ALERT_CRON= turns
// the job off.
func lookupWithDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func parseLang(s string) locale.Lang {
	lang, _ := locale.ParseLang(s)
	return lang
}
