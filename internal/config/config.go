package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
)

type Config struct {
	// HTTP server
	Port string

	// Backend selection and storage
	DataBackend  string
	DataDir      string
	SQLiteDBPath string
	PostgresDSN  string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Plan cache
	CacheBackend  string
	CacheSize     int
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Finance rules (tax brackets, support thresholds). Empty means built-in.
	RulesFile string

	// Workers
	BillSchedule          string
	BillTimezone          string
	BillHorizon           time.Duration
	PlanRecomputeInterval time.Duration
	PlanExtraPayment      float64
	PlanMaxMonths         int

	LogLevel string
}

var (
	validBackends      = []string{"memory", "sqlite", "postgres"}
	validCacheBackends = []string{"lru", "redis"}
	validLogLevels     = []string{"debug", "info", "warn", "error"}
)

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		DataBackend:  getEnv("DATA_BACKEND", "memory"),
		DataDir:      getEnv("DATA_DIR", "data"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/pengeplan.db"),
		PostgresDSN:  getEnv("POSTGRES_DSN", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "pengeplan"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "debts.changed"),

		CacheBackend:  getEnv("CACHE_BACKEND", "lru"),
		CacheSize:     getEnvInt("CACHE_SIZE", 256),
		CacheTTL:      getEnvDuration("CACHE_TTL", 10*time.Minute),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RulesFile: getEnv("FINANCE_RULES_FILE", ""),

		BillSchedule:          getEnv("BILL_SCHEDULE", "0 6 * * *"),
		BillTimezone:          getEnv("BILL_TIMEZONE", "Europe/Oslo"),
		BillHorizon:           getEnvDuration("BILL_HORIZON", 31*24*time.Hour),
		PlanRecomputeInterval: getEnvDuration("PLAN_RECOMPUTE_INTERVAL", time.Hour),
		PlanExtraPayment:      getEnvFloat("PLAN_EXTRA_PAYMENT", 0),
		PlanMaxMonths:         getEnvInt("PLAN_MAX_MONTHS", 600),

		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
}

// Validate checks every setting and reports all problems in one error.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !slices.Contains(validBackends, c.DataBackend) {
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
			}
		}
	case "postgres":
		if c.PostgresDSN == "" {
			errs = append(errs, "POSTGRES_DSN is required when using postgres backend")
		} else if u, err := url.Parse(c.PostgresDSN); err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
			errs = append(errs, "invalid POSTGRES_DSN: must be a postgres:// or postgresql:// URL")
		}
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if !slices.Contains(validCacheBackends, c.CacheBackend) {
		errs = append(errs, fmt.Sprintf("invalid cache backend '%s': must be one of %v", c.CacheBackend, validCacheBackends))
	}
	if c.CacheBackend == "redis" && c.RedisAddr == "" {
		errs = append(errs, "REDIS_ADDR is required when using redis cache")
	}
	if c.CacheSize < 1 {
		errs = append(errs, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	}

	if c.RulesFile != "" {
		if _, err := os.Stat(c.RulesFile); err != nil {
			errs = append(errs, fmt.Sprintf("finance rules file not readable: %s", c.RulesFile))
		}
	}

	if _, err := cron.ParseStandard(c.BillSchedule); err != nil {
		errs = append(errs, fmt.Sprintf("invalid bill schedule '%s': %v", c.BillSchedule, err))
	}
	if _, err := time.LoadLocation(c.BillTimezone); err != nil {
		errs = append(errs, fmt.Sprintf("invalid bill timezone '%s': %v", c.BillTimezone, err))
	}
	if c.BillHorizon < 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid bill horizon %v: must be at least 24 hours", c.BillHorizon))
	}

	if c.PlanRecomputeInterval < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid plan recompute interval %v: must be at least 1 minute", c.PlanRecomputeInterval))
	} else if c.PlanRecomputeInterval > 7*24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid plan recompute interval %v: must be at most 7 days", c.PlanRecomputeInterval))
	}
	if c.PlanExtraPayment < 0 {
		errs = append(errs, fmt.Sprintf("invalid plan extra payment %v: must not be negative", c.PlanExtraPayment))
	}
	if c.PlanMaxMonths < 1 || c.PlanMaxMonths > 1200 {
		errs = append(errs, fmt.Sprintf("invalid plan max months %d: must be between 1 and 1200", c.PlanMaxMonths))
	}

	if !slices.Contains(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
