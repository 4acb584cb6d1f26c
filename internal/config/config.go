// Package config defines the run configuration for the reconciliation engine
// and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"keeper-ledger/internal/league"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by KEEPER_* environment variables.
type Config struct {
	Season      int              `toml:"season"`
	Environment string           `toml:"environment"`
	LogLevel    string           `toml:"log_level"`
	Mode        string           `toml:"mode"`
	League      LeagueConfig     `toml:"league"`
	Sources     SourcesConfig    `toml:"sources"`
	Postgres    PostgresConfig   `toml:"postgres"`
	ClickHouse  ClickHouseConfig `toml:"clickhouse"`
	Redis       RedisConfig      `toml:"redis"`
	S3          S3Config         `toml:"s3"`
	Metrics     MetricsConfig    `toml:"metrics"`
	Output      OutputConfig     `toml:"output"`
}

// LeagueConfig describes the draft. Teams maps team number to manager name.
type LeagueConfig struct {
	DraftOrder       []string          `toml:"draft_order"`
	Rounds           int               `toml:"rounds"`
	NARounds         []int             `toml:"na_rounds"`
	MaxKeeperRound   int               `toml:"max_keeper_round"`
	ProtectionRounds int               `toml:"protection_rounds"`
	Teams            map[string]string `toml:"teams"`
}

// SourcesConfig selects where inputs are read from.
type SourcesConfig struct {
	Backend        string `toml:"backend"` // file, postgres or memory
	DataDir        string `toml:"data_dir"`
	TradesFile     string `toml:"trades_file"`
	RankCSV        string `toml:"rank_csv"`
	PreviousSeason int    `toml:"previous_season"` // 0 means season-1
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	DSN           string `toml:"dsn"`
	MaxConns      int    `toml:"max_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// ClickHouseConfig holds the run-audit sink parameters.
type ClickHouseConfig struct {
	Enabled bool   `toml:"enabled"`
	DSN     string `toml:"dsn"`
}

// RedisConfig holds Redis connection parameters for the rank cache.
type RedisConfig struct {
	Enabled  bool     `toml:"enabled"`
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	RankTTL  duration `toml:"rank_ttl"`
}

// S3Config holds S3-compatible object storage parameters for report upload.
type S3Config struct {
	Enabled        bool   `toml:"enabled"`
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
	Prefix         string `toml:"prefix"`
}

// MetricsConfig configures the pushgateway. An empty URL disables pushing.
type MetricsConfig struct {
	PushgatewayURL string `toml:"pushgateway_url"`
	Job            string `toml:"job"`
}

// OutputConfig controls where rendered reports are written.
type OutputConfig struct {
	Dir     string   `toml:"dir"`
	Formats []string `toml:"formats"`
}

// duration wraps time.Duration so it can be decoded from a TOML string.
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "24h" or "30m".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Run modes.
const (
	ModeBoard   = "board"
	ModeKeepers = "keepers"
	ModeAll     = "all"
)

// Source backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Report formats.
const (
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
)

var validModes = map[string]bool{ModeBoard: true, ModeKeepers: true, ModeAll: true}

var validBackends = map[string]bool{BackendFile: true, BackendPostgres: true, BackendMemory: true}

var validFormats = map[string]bool{FormatMarkdown: true, FormatCSV: true, FormatJSON: true}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var validEnvironments = map[string]bool{
	"production": true, "staging": true, "uat": true, "development": true, "local": true,
}

// Defaults returns a Config populated with the reference league's settings.
func Defaults() Config {
	return Config{
		Environment: "local",
		LogLevel:    "info",
		Mode:        ModeAll,
		League: LeagueConfig{
			Rounds:           league.DefaultRounds,
			NARounds:         []int{24, 25, 26, 27},
			ProtectionRounds: league.DefaultProtectionRounds,
		},
		Sources: SourcesConfig{
			Backend:    BackendFile,
			DataDir:    "data",
			TradesFile: "trades.yaml",
		},
		Postgres: PostgresConfig{
			MaxConns:      5,
			RunMigrations: true,
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			RankTTL: duration{24 * time.Hour},
		},
		S3: S3Config{
			Region:         "us-east-1",
			UseSSL:         true,
			ForcePathStyle: true,
			Prefix:         "reports",
		},
		Metrics: MetricsConfig{
			Job: "keeper_reconcile",
		},
		Output: OutputConfig{
			Dir:     "out",
			Formats: []string{FormatMarkdown, FormatJSON},
		},
	}
}

// PreviousSeason returns the season whose draft and rosters define continuing keepers.
func (c *Config) PreviousSeason() int {
	if c.Sources.PreviousSeason != 0 {
		return c.Sources.PreviousSeason
	}
	return c.Season - 1
}

// RankTTL returns the configured rank cache lifetime.
func (c *Config) RankTTL() time.Duration {
	return c.Redis.RankTTL.Duration
}

// BuildLeague builds the league definition injected into the core.
func (c *Config) BuildLeague() (*league.League, error) {
	return league.New(league.Options{
		DraftOrder:       c.League.DraftOrder,
		Rounds:           c.League.Rounds,
		NARounds:         c.League.NARounds,
		MaxKeeperRound:   c.League.MaxKeeperRound,
		ProtectionRounds: c.League.ProtectionRounds,
		Teams:            c.League.Teams,
	})
}

// Validate checks the configuration for errors and returns all of them at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Season <= 0 {
		errs = append(errs, "season must be set")
	}
	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: board, keepers, all)", c.Mode))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}
	if !validEnvironments[strings.ToLower(c.Environment)] {
		errs = append(errs, fmt.Sprintf("unknown environment %q", c.Environment))
	}

	// League
	if len(c.League.DraftOrder) == 0 {
		errs = append(errs, "league: draft_order must not be empty")
	} else if _, err := c.BuildLeague(); err != nil {
		errs = append(errs, "league: "+err.Error())
	}

	// Sources
	if !validBackends[c.Sources.Backend] {
		errs = append(errs, fmt.Sprintf("sources: unknown backend %q (valid: file, postgres, memory)", c.Sources.Backend))
	}
	if c.Sources.Backend == BackendFile && c.Sources.DataDir == "" {
		errs = append(errs, "sources: data_dir is required for the file backend")
	}
	if c.Sources.TradesFile == "" && c.Mode != ModeKeepers {
		errs = append(errs, "sources: trades_file is required for mode "+c.Mode)
	}
	if c.PreviousSeason() >= c.Season && c.Season > 0 {
		errs = append(errs, "sources: previous_season must precede season")
	}

	// Postgres
	if c.Sources.Backend == BackendPostgres && c.Postgres.DSN == "" {
		errs = append(errs, "postgres: dsn is required for the postgres backend")
	}
	if c.Postgres.MaxConns < 0 {
		errs = append(errs, "postgres: max_conns must not be negative")
	}

	// ClickHouse
	if c.ClickHouse.Enabled && c.ClickHouse.DSN == "" {
		errs = append(errs, "clickhouse: dsn is required when enabled")
	}

	// Redis
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, "redis: addr is required when enabled")
	}
	if c.Redis.Enabled && c.RankTTL() <= 0 {
		errs = append(errs, "redis: rank_ttl must be positive")
	}

	// S3
	if c.S3.Enabled && c.S3.Bucket == "" {
		errs = append(errs, "s3: bucket is required when enabled")
	}

	// Output
	if len(c.Output.Formats) > 0 && c.Output.Dir == "" && !c.S3.Enabled {
		errs = append(errs, "output: dir is required when formats are set")
	}
	for _, f := range c.Output.Formats {
		if !validFormats[f] {
			errs = append(errs, fmt.Sprintf("output: unknown format %q (valid: markdown, csv, json)", f))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
