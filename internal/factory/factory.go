package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gamiempire/sovereign/internal/dependencies/clock"
	"github.com/gamiempire/sovereign/internal/dependencies/random"
	"github.com/gamiempire/sovereign/internal/model"
	"github.com/gamiempire/sovereign/internal/services/audit"
	"github.com/gamiempire/sovereign/internal/services/economy"
	"github.com/gamiempire/sovereign/internal/services/identity"
	"github.com/gamiempire/sovereign/internal/services/monitor"
	"github.com/gamiempire/sovereign/internal/services/override"
	"github.com/gamiempire/sovereign/internal/services/settings"
	"github.com/gamiempire/sovereign/internal/services/theme"
	"github.com/gamiempire/sovereign/internal/storage"
	"github.com/gamiempire/sovereign/internal/storage/memory"
	redisstorage "github.com/gamiempire/sovereign/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuditLogger     *audit.Logger
	IdentityService *identity.Service
	Engine          *economy.Engine
	OverrideService *override.Service
	ThemeState      *theme.State
	Registry        *settings.Registry
	Monitor         *monitor.Monitor
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// IdentityConfig holds identity settings (optional)
	// If zero value, defaults to identity.DefaultConfig()
	IdentityConfig identity.Config
	// MonitorConfig holds reconciliation intervals (optional)
	// If zero value, defaults to monitor.DefaultConfig()
	MonitorConfig monitor.Config
}

// New creates a new application with all dependencies wired.
//
// When the redis backend fails to initialize, the application degrades
// to the in-memory backend instead of refusing to start; callers can
// detect the degradation through App.Storage's concrete type or the
// warning log it emits.
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		if cfg.RedisConfig != nil {
			redisCfg = *cfg.RedisConfig
		}
		redisStore, err := redisstorage.New(redisCfg)
		if err != nil {
			logger.Warn("redis storage unavailable, falling back to memory",
				slog.String("error", err.Error()),
			)
			store = memory.New()
		} else {
			store = redisStore
		}
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default identity config if not provided
	identityCfg := cfg.IdentityConfig
	if identityCfg.RootUsername == "" {
		identityCfg = identity.DefaultConfig()
	}

	monitorCfg := cfg.MonitorConfig
	if monitorCfg.SnapshotInterval == 0 {
		monitorCfg = monitor.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, identityCfg, monitorCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, identityCfg identity.Config, monitorCfg monitor.Config, logger *slog.Logger) *App {
	// Create services
	auditLogger := audit.New(store, clk, logger)
	identityService := identity.New(store, auditLogger, clk, rnd, identityCfg, logger)
	engine := economy.New(store, auditLogger, clk, logger)
	overrideService := override.New(store, identityService, engine, auditLogger, logger)
	themeState := theme.New()

	registry := settings.New(auditLogger, logger)
	registry.Route(model.CategoryNature, engine)
	registry.Route(model.CategoryPhysics, engine)
	registry.Route(model.CategoryShop, engine)
	registry.Route(model.CategoryAdmin, overrideService)
	registry.Route(model.CategoryVisual, themeState)

	mon := monitor.New(store, identityService, engine, registry, auditLogger, clk, monitorCfg, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		AuditLogger:     auditLogger,
		IdentityService: identityService,
		Engine:          engine,
		OverrideService: overrideService,
		ThemeState:      themeState,
		Registry:        registry,
		Monitor:         mon,
	}
}
