// Package config loads runtime settings from defaults, an optional YAML
// file and environment variables, in that order.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Config holds runtime settings for the server.
type Config struct {
	Port         string `yaml:"port"`
	Store        string `yaml:"store"`
	DataFile     string `yaml:"dataFile"`
	DatabasePath string `yaml:"databasePath"`
	StaticDir    string `yaml:"staticDir"`
	BcryptCost   int    `yaml:"bcryptCost"`
	LogLevel     string `yaml:"logLevel"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Config {
	return Config{
		Port:         "3000",
		Store:        StoreJSON,
		DataFile:     "data.json",
		DatabasePath: "users.db",
		StaticDir:    "public",
		BcryptCost:   10,
		LogLevel:     "info",
	}
}

// Load builds a Config from defaults, the YAML file named by CONFIG_FILE
// (if set) and finally environment variables. The result is validated.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Defaults()

	if path := getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	overrideString(getenv, "PORT", &cfg.Port)
	overrideString(getenv, "STORE", &cfg.Store)
	overrideString(getenv, "DATA_FILE", &cfg.DataFile)
	overrideString(getenv, "DATABASE_PATH", &cfg.DatabasePath)
	overrideString(getenv, "STATIC_DIR", &cfg.StaticDir)
	overrideString(getenv, "LOG_LEVEL", &cfg.LogLevel)

	if v := getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = parsed
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overrideString(getenv func(string) string, key string, dst *string) {
	if v := getenv(key); v != "" {
		*dst = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	switch c.Store {
	case StoreJSON:
		if c.DataFile == "" {
			return fmt.Errorf("data file must be set for the %s store", StoreJSON)
		}
	case StoreSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("database path must be set for the %s store", StoreSQLite)
		}
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreJSON, StoreSQLite)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost must be between 4 and 14, got %d", c.BcryptCost)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// Addr returns the listen address for Port.
func (c Config) Addr() string {
	return ":" + c.Port
}
