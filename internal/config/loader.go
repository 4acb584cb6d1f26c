package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies KEEPER_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides overwrites Config fields from KEEPER_* environment
// variables so credentials stay out of the TOML file.
func applyEnvOverrides(cfg *Config) {
	setInt(&cfg.Season, "KEEPER_SEASON")
	setStr(&cfg.Environment, "KEEPER_ENVIRONMENT")
	setStr(&cfg.LogLevel, "KEEPER_LOG_LEVEL")
	setStr(&cfg.Mode, "KEEPER_MODE")

	// ── Sources ──
	setStr(&cfg.Sources.Backend, "KEEPER_SOURCES_BACKEND")
	setStr(&cfg.Sources.DataDir, "KEEPER_SOURCES_DATA_DIR")
	setStr(&cfg.Sources.TradesFile, "KEEPER_SOURCES_TRADES_FILE")
	setStr(&cfg.Sources.RankCSV, "KEEPER_SOURCES_RANK_CSV")
	setInt(&cfg.Sources.PreviousSeason, "KEEPER_SOURCES_PREVIOUS_SEASON")

	// ── Postgres ──
	setStr(&cfg.Postgres.DSN, "KEEPER_POSTGRES_DSN")
	setInt(&cfg.Postgres.MaxConns, "KEEPER_POSTGRES_MAX_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "KEEPER_POSTGRES_RUN_MIGRATIONS")

	// ── ClickHouse ──
	setBool(&cfg.ClickHouse.Enabled, "KEEPER_CLICKHOUSE_ENABLED")
	setStr(&cfg.ClickHouse.DSN, "KEEPER_CLICKHOUSE_DSN")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "KEEPER_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "KEEPER_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "KEEPER_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "KEEPER_REDIS_DB")
	setDuration(&cfg.Redis.RankTTL, "KEEPER_REDIS_RANK_TTL")

	// ── S3 ──
	setBool(&cfg.S3.Enabled, "KEEPER_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "KEEPER_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "KEEPER_S3_REGION")
	setStr(&cfg.S3.Bucket, "KEEPER_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "KEEPER_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "KEEPER_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "KEEPER_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "KEEPER_S3_FORCE_PATH_STYLE")
	setStr(&cfg.S3.Prefix, "KEEPER_S3_PREFIX")

	// ── Metrics ──
	setStr(&cfg.Metrics.PushgatewayURL, "KEEPER_METRICS_PUSHGATEWAY_URL")
	setStr(&cfg.Metrics.Job, "KEEPER_METRICS_JOB")

	// ── Output ──
	setStr(&cfg.Output.Dir, "KEEPER_OUTPUT_DIR")
	setStringSlice(&cfg.Output.Formats, "KEEPER_OUTPUT_FORMATS")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				cleaned = append(cleaned, s)
			}
		}
		*dst = cleaned
	}
}
