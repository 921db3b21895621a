package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Feed source kinds.
const (
	SourceExcel    = "excel"
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// FeedConfig locates one tabular feed.
type FeedConfig struct {
	Path      string `yaml:"path"`
	Sheet     string `yaml:"sheet"`
	HeaderRow int    `yaml:"header_row"`
}

// FeedsConfig selects where both feeds come from.
type FeedsConfig struct {
	Source           string     `yaml:"source"`
	Generation       FeedConfig `yaml:"generation"`
	Consumption      FeedConfig `yaml:"consumption"`
	DatabaseURL      string     `yaml:"database_url"`
	GenerationTable  string     `yaml:"generation_table"`
	ConsumptionTable string     `yaml:"consumption_table"`
}

// AuthConfig enables bearer-token auth when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// Config is the dashboard service configuration.
type Config struct {
	HTTPAddr string      `yaml:"http_addr"`
	Feeds    FeedsConfig `yaml:"feeds"`
	Auth     AuthConfig  `yaml:"auth"`
}

// Default returns the configuration matching the published workbooks. The EIA
// ships the generation feed as legacy .xls; it must be re-saved as .xlsx
// (annual_generation_state.xlsx) before the excel source can read it.
func Default() Config {
	return Config{
		HTTPAddr: ":8050",
		Feeds: FeedsConfig{
			Source: SourceExcel,
			Generation: FeedConfig{
				Path:      "annual_generation_state.xlsx",
				HeaderRow: 2,
			},
			Consumption: FeedConfig{
				Path:      "annual_consumption_total.xlsx",
				Sheet:     "Annual Data",
				HeaderRow: 11,
			},
		},
	}
}

// Load reads the yaml file at path (when non-empty, falling back to ENERGY_CONFIG)
// and then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("ENERGY_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.HTTPAddr = getenvDefault("HTTP_ADDR", cfg.HTTPAddr)
	cfg.Feeds.Source = getenvDefault("FEED_SOURCE", cfg.Feeds.Source)
	cfg.Feeds.Generation.Path = getenvDefault("GENERATION_FEED", cfg.Feeds.Generation.Path)
	cfg.Feeds.Generation.Sheet = getenvDefault("GENERATION_SHEET", cfg.Feeds.Generation.Sheet)
	cfg.Feeds.Generation.HeaderRow = getenvIntDefault("GENERATION_HEADER_ROW", cfg.Feeds.Generation.HeaderRow)
	cfg.Feeds.Consumption.Path = getenvDefault("CONSUMPTION_FEED", cfg.Feeds.Consumption.Path)
	cfg.Feeds.Consumption.Sheet = getenvDefault("CONSUMPTION_SHEET", cfg.Feeds.Consumption.Sheet)
	cfg.Feeds.Consumption.HeaderRow = getenvIntDefault("CONSUMPTION_HEADER_ROW", cfg.Feeds.Consumption.HeaderRow)
	cfg.Feeds.DatabaseURL = getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", cfg.Feeds.DatabaseURL))
	cfg.Auth.JWTSecret = getenvDefault("AUTH_JWT_SECRET", cfg.Auth.JWTSecret)
}

// Validate checks the settings needed by the selected feed source.
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("config: http_addr required")
	}
	switch c.Feeds.Source {
	case SourceExcel, SourceCSV:
		if c.Feeds.Generation.Path == "" || c.Feeds.Consumption.Path == "" {
			return errors.New("config: generation and consumption feed paths required")
		}
	case SourcePostgres:
		if c.Feeds.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL or PG_DSN is required for postgres feeds")
		}
	default:
		return fmt.Errorf("config: unknown feed source %q", c.Feeds.Source)
	}
	if c.Feeds.Generation.HeaderRow < 0 || c.Feeds.Consumption.HeaderRow < 0 {
		return errors.New("config: header_row must not be negative")
	}
	return nil
}

// AuthEnabled reports whether API requests need a bearer token.
func (c Config) AuthEnabled() bool {
	return c.Auth.JWTSecret != ""
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
