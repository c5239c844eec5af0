// Package config loads cmd/orbitd's two configuration surfaces: a YAML
// runtime config (listen address, admin JWT secret, rate limits, telemetry
// endpoints) following the teacher's lendingd daemon config idiom, and a
// TOML genesis seed (bridge mappings, initial stablecoin onboarding list)
// following the teacher's node genesis config idiom.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures cmd/orbitd's runtime settings.
type Config struct {
	ListenAddress string        `yaml:"listen"`
	DataDir       string        `yaml:"data_dir"`
	Admin         AdminConfig   `yaml:"admin"`
	RateLimit     RateLimit     `yaml:"keep_peg_rate_limit"`
	Logging       LoggingConfig `yaml:"logging"`
	Telemetry     Telemetry     `yaml:"telemetry"`
	EventLog      EventLog      `yaml:"event_log"`
}

// AdminConfig configures the JWT bearer authentication guarding
// /v1/admin/... (spec.md §4.4 ADDED note).
type AdminConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// RateLimit configures the token-bucket limiter wrapping Treasury's
// permissionless keep_peg entrypoint (SPEC_FULL.md §4.3.1).
type RateLimit struct {
	TokensPerSecond float64 `yaml:"tokens_per_second"`
	Burst           int     `yaml:"burst"`
}

// LoggingConfig is passed straight through to observability/logging.Setup.
type LoggingConfig struct {
	Env        string `yaml:"env"`
	FilePath   string `yaml:"file_path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Telemetry is passed straight through to observability/otel.Init.
type Telemetry struct {
	Enabled     bool              `yaml:"enabled"`
	Endpoint    string            `yaml:"endpoint"`
	Insecure    bool              `yaml:"insecure"`
	HeaderPairs string            `yaml:"headers"`
	Headers     map[string]string `yaml:"-"`
}

// EventLog selects the audit-sink backend for cmd/orbitd's eventlog.Sink.
type EventLog struct {
	// Driver is either "postgres" or "sqlite". Empty selects the embedded
	// SQLite backend, the same as "sqlite".
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Load reads and validates the YAML runtime configuration at path.
func Load(path string) (Config, error) {
	cfg := Config{
		ListenAddress: ":8080",
		DataDir:       "./orbitd-data",
		RateLimit:     RateLimit{TokensPerSecond: 1, Burst: 5},
	}
	if strings.TrimSpace(path) == "" {
		return cfg, fmt.Errorf("config: path required")
	}
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) normalize() {
	cfg.ListenAddress = strings.TrimSpace(cfg.ListenAddress)
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = ":8080"
	}
	cfg.DataDir = strings.TrimSpace(cfg.DataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = "./orbitd-data"
	}
	if cfg.RateLimit.TokensPerSecond <= 0 {
		cfg.RateLimit.TokensPerSecond = 1
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 5
	}
	cfg.Telemetry.Headers = parseHeaderPairs(cfg.Telemetry.HeaderPairs)
	cfg.EventLog.Driver = strings.ToLower(strings.TrimSpace(cfg.EventLog.Driver))
}

func (cfg Config) validate() error {
	if cfg.Admin.JWTSecret == "" {
		return fmt.Errorf("config: admin.jwt_secret is required")
	}
	switch cfg.EventLog.Driver {
	case "", "postgres", "sqlite":
	default:
		return fmt.Errorf("config: event_log.driver must be postgres or sqlite, got %q", cfg.EventLog.Driver)
	}
	if cfg.EventLog.Driver != "" && strings.TrimSpace(cfg.EventLog.DSN) == "" {
		return fmt.Errorf("config: event_log.dsn is required when event_log.driver is set")
	}
	return nil
}

func parseHeaderPairs(raw string) map[string]string {
	headers := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(pair)
		if trimmed == "" {
			continue
		}
		key, value, found := strings.Cut(trimmed, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers
}
