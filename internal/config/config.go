package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/claude/fitplan/internal/models"
	"gopkg.in/yaml.v3"
)

// Catalog source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type Config struct {
	Plan      PlanConfig      `yaml:"plan"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Log       LogConfig       `yaml:"log"`
}

type PlanConfig struct {
	Days       int      `yaml:"days"`
	TimePerDay int      `yaml:"time_per_day"`
	Goals      []string `yaml:"goals"`
	Equipment  []string `yaml:"available_equipment"`
	AvoidTags  []string `yaml:"avoid_tags"`
}

type CatalogConfig struct {
	Source string `yaml:"source"`
	Path   string `yaml:"path"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration: a 7-day plan of 30-minute
// sessions aimed at strength and cardio with common home equipment.
func Default() *Config {
	return &Config{
		Plan: PlanConfig{
			Days:       7,
			TimePerDay: 30,
			Goals:      []string{"strength", "cardio"},
			Equipment:  []string{"bodyweight", "dumbbell", "kettlebell", "mat", "jump rope", "bike", "band"},
			AvoidTags:  []string{},
		},
		Catalog: CatalogConfig{
			Source: SourceCSV,
			Path:   "data/exercises.csv",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Port: 5432,
		},
		Tailscale: TailscaleConfig{
			Hostname: "fitplan",
			StateDir: "tsnet-state",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// PlanConfig converts the plan section into the planner's value type.
func (c *Config) PlanConfig() models.PlanConfig {
	return models.NewPlanConfig(c.Plan.Days, c.Plan.TimePerDay, c.Plan.Goals, c.Plan.Equipment, c.Plan.AvoidTags)
}

// SlogLevel maps log.level to a slog level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load starts from Default, overlays the YAML file at path (skipped when path
// is empty), then applies environment variable overrides.
// Env vars use the prefix FITPLAN_ and underscore-separated paths:
//
//	FITPLAN_PLAN_DAYS, FITPLAN_PLAN_TIME_PER_DAY, FITPLAN_PLAN_GOALS,
//	FITPLAN_PLAN_EQUIPMENT, FITPLAN_PLAN_AVOID_TAGS,
//	FITPLAN_CATALOG_SOURCE, FITPLAN_CATALOG_PATH,
//	FITPLAN_SERVER_HOST, FITPLAN_SERVER_PORT,
//	FITPLAN_DB_HOST, FITPLAN_DB_PORT, FITPLAN_DB_NAME,
//	FITPLAN_DB_USER, FITPLAN_DB_PASSWORD, FITPLAN_DB_SSLMODE,
//	FITPLAN_AUTH_API_KEY, FITPLAN_LOG_LEVEL
//
// List values are comma-separated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FITPLAN_PLAN_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Plan.Days = n
		}
	}
	if v := os.Getenv("FITPLAN_PLAN_TIME_PER_DAY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Plan.TimePerDay = n
		}
	}
	if v, ok := os.LookupEnv("FITPLAN_PLAN_GOALS"); ok {
		cfg.Plan.Goals = SplitList(v)
	}
	if v, ok := os.LookupEnv("FITPLAN_PLAN_EQUIPMENT"); ok {
		cfg.Plan.Equipment = SplitList(v)
	}
	if v, ok := os.LookupEnv("FITPLAN_PLAN_AVOID_TAGS"); ok {
		cfg.Plan.AvoidTags = SplitList(v)
	}
	if v := os.Getenv("FITPLAN_CATALOG_SOURCE"); v != "" {
		cfg.Catalog.Source = v
	}
	if v := os.Getenv("FITPLAN_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("FITPLAN_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("FITPLAN_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FITPLAN_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("FITPLAN_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("FITPLAN_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("FITPLAN_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("FITPLAN_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("FITPLAN_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("FITPLAN_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("FITPLAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// SplitList splits a comma-separated value, trimming items and dropping empty ones.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if c.Plan.Days <= 0 {
		return fmt.Errorf("plan.days must be positive")
	}
	if c.Plan.TimePerDay <= 0 {
		return fmt.Errorf("plan.time_per_day must be positive")
	}
	switch c.Catalog.Source {
	case SourceCSV:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for csv source")
		}
	case SourcePostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("catalog.source must be %q or %q, got %q", SourceCSV, SourcePostgres, c.Catalog.Source)
	}
	return nil
}

// ValidateServe checks the additional settings required by the HTTP server.
func (c *Config) ValidateServe() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	return nil
}

// ValidateDatabase checks the settings needed to reach Postgres.
func (c *Config) ValidateDatabase() error {
	return c.Database.validate()
}

func (d DatabaseConfig) validate() error {
	if d.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if d.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if d.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if d.User == "" {
		return fmt.Errorf("database.user is required")
	}
	return nil
}
