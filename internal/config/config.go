package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	yaml "go.yaml.in/yaml/v3"
)

// Config holds the runtime settings for maintkit. All fields have working
// defaults so the binary runs with no config file at all.
type Config struct {
	// DBPath is the SQLite database file, or ":memory:".
	DBPath string `yaml:"db_path"`

	// HorizonDays bounds schedule previews past today.
	HorizonDays int `yaml:"horizon_days"`

	// IterationCap bounds any single plan's occurrence projection.
	IterationCap int `yaml:"iteration_cap"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Daemon DaemonConfig `yaml:"daemon"`
}

// DaemonConfig controls the background generation trigger.
type DaemonConfig struct {
	// Cron is a standard 5-field cron expression for when generation runs.
	Cron string `yaml:"cron"`

	// Timezone names the IANA location the cron expression is evaluated in.
	// Empty means the process-local timezone.
	Timezone string `yaml:"timezone"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		DBPath:       filepath.Join(home, ".maintkit", "maintkit.db"),
		HorizonDays:  365,
		IterationCap: 1000,
		LogLevel:     "info",
		Daemon: DaemonConfig{
			Cron: "15 2 * * *",
		},
	}
}

// Load reads the YAML config at path, layered over the defaults and under
// any MAINTKIT_* environment overrides. A missing file is not an error; the
// defaults plus environment are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to env overrides
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv lets deployment environments override file settings without
// touching the file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("MAINTKIT_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("MAINTKIT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MAINTKIT_HORIZON_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.HorizonDays = parsed
		}
	}
	if v := os.Getenv("MAINTKIT_DAEMON_CRON"); v != "" {
		cfg.Daemon.Cron = v
	}
}

// Validate rejects settings that would make the services misbehave rather
// than letting them fail later with a confusing error.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.HorizonDays <= 0 {
		return fmt.Errorf("horizon_days must be positive, got %d", c.HorizonDays)
	}
	if c.IterationCap <= 0 {
		return fmt.Errorf("iteration_cap must be positive, got %d", c.IterationCap)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// DefaultPath is where Load looks when the user gives no --config flag.
// Overridable with MAINTKIT_CONFIG.
func DefaultPath() string {
	if v := os.Getenv("MAINTKIT_CONFIG"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".maintkit", "config.yaml")
}
