// Package cli holds the start-up steps shared by cmd/pengeplan,
// cmd/plan-worker and cmd/bill-worker.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pengeplan/internal/backend"
	"pengeplan/internal/cache"
	"pengeplan/internal/config"
	"pengeplan/internal/core"
	"pengeplan/internal/finance"
	"pengeplan/internal/log"
)

// LoadEnvFile loads .env for local development. A missing file is fine.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the process logger at the LOG_LEVEL from the
// environment and installs it as the slog default.
func SetupLogger(component string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(os.Getenv("LOG_LEVEL"))
	cfg.Component = component
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig exits the process when the configuration is invalid.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitBackend builds the configured store or exits.
func InitBackend(ctx context.Context, logger *log.Logger, cfg *config.Config) *backend.BackendResult {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	factory := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Slog())
	result, err := factory.CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	logger.Info("Backend ready", "backend", cfg.DataBackend)
	return result
}

// LoadRules reads the tax and support tables or exits.
func LoadRules(logger *log.Logger, cfg *config.Config) finance.Rules {
	rules, err := finance.LoadRules(cfg.RulesFile)
	if err != nil {
		logger.Error("Failed to load finance rules", log.FieldError, err, "path", cfg.RulesFile)
		os.Exit(1)
	}
	return rules
}

// PlanCaches are the result caches the Planner reads through.
type PlanCaches struct {
	Plans       cache.Cache[core.PayoffPlan]
	Comparisons cache.Cache[finance.Comparison]
	close       func() error
}

// Close stops cleanup loops and releases remote connections.
func (c *PlanCaches) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}

// NewPlanCaches builds LRU or Redis caches per CACHE_BACKEND. When Redis
// is unreachable at start-up the in-process LRU is used instead.
func NewPlanCaches(ctx context.Context, logger *log.Logger, cfg *config.Config) *PlanCaches {
	cacheLog := logger.WithComponent(log.ComponentCache).Slog()

	if cfg.CacheBackend == "redis" {
		client := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			logger.Info("Using Redis plan cache", "addr", cfg.RedisAddr)
			return &PlanCaches{
				Plans:       cache.NewRedisCache[core.PayoffPlan](client, cfg.CacheTTL, cacheLog),
				Comparisons: cache.NewRedisCache[finance.Comparison](client, cfg.CacheTTL, cacheLog),
				close:       client.Close,
			}
		}
		logger.Warn("Redis unavailable, falling back to in-process cache", log.FieldError, err, "addr", cfg.RedisAddr)
		_ = client.Close()
	}

	plans := cache.NewLRUCache[core.PayoffPlan](cfg.CacheSize, cfg.CacheTTL)
	comparisons := cache.NewLRUCache[finance.Comparison](cfg.CacheSize, cfg.CacheTTL)
	manager := cache.NewManager(cacheLog)
	manager.Register(plans)
	manager.Register(comparisons)
	manager.StartCleanup(cleanupInterval(cfg.CacheTTL))

	return &PlanCaches{
		Plans:       plans,
		Comparisons: comparisons,
		close: func() error {
			manager.Stop()
			return nil
		},
	}
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 || ttl > 10*time.Minute {
		return 10 * time.Minute
	}
	return ttl
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// Shutdown runs cleanups in order and joins their errors.
func Shutdown(logger *log.Logger, cleanups ...func() error) {
	var errs []error
	for _, c := range cleanups {
		if c == nil {
			continue
		}
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		logger.Error("Shutdown finished with errors", log.FieldError, err)
		return
	}
	logger.Info("Shutdown complete")
}
