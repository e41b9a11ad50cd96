// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/platewise/v1/internal/application/planner"
	"github.com/platewise/v1/internal/domain/recipe"
	"github.com/platewise/v1/internal/infrastructure/cache"
	"github.com/platewise/v1/internal/infrastructure/config"
	"github.com/platewise/v1/internal/infrastructure/http/handlers"
	"github.com/platewise/v1/internal/infrastructure/http/server"
	"github.com/platewise/v1/internal/infrastructure/ingestion"
	"github.com/platewise/v1/internal/infrastructure/monitoring"
	gormRepo "github.com/platewise/v1/internal/infrastructure/persistence/gorm"
	"github.com/platewise/v1/internal/infrastructure/persistence/sqlite"
	"github.com/platewise/v1/internal/ports/inbound"
	"github.com/platewise/v1/internal/ports/outbound"
	"github.com/platewise/v1/pkg/healthcheck"
	"github.com/platewise/v1/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	PoolModule,
	ServiceModule,
	HealthModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the embedded dataset store
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		logLevel := gormLogger.Silent
		if cfg.Database.LogQueries {
			logLevel = gormLogger.Info
		}
		db, err := sqlite.SetupDatabase(cfg.Database.Path, logLevel)
		if err != nil {
			return nil, err
		}
		log.Info("connected to dataset store", zap.String("path", cfg.Database.Path))
		return db, nil
	},
)

// CacheModule provides the plan cache: Redis when configured, in-memory
// otherwise
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
		if cfg.Redis.Enabled {
			repo, err := cache.NewRedisRepository(context.Background(), cache.RedisConfig{
				Host:     cfg.Redis.Host,
				Port:     cfg.Redis.Port,
				Password: cfg.Redis.Password,
				Database: cfg.Redis.Database,
			}, log)
			if err == nil {
				return repo
			}
			log.Warn("redis unavailable, falling back to in-memory cache", zap.Error(err))
		}
		return cache.NewMemoryRepository()
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewPoolRepository,
)

// PoolModule ingests the dataset when the store is empty and loads the
// process-lifetime candidate pool
var PoolModule = fx.Provide(
	func(pool outbound.RecipePool, cfg *config.Config, log *zap.Logger) ([]*recipe.Record, error) {
		loader := ingestion.NewLoader(pool, ingestion.Config{
			RecipesCSV:      cfg.Dataset.RecipesCSV,
			InteractionsCSV: cfg.Dataset.InteractionsCSV,
			RowLimit:        cfg.Dataset.RowLimit,
		}, log)
		if _, err := loader.Run(context.Background()); err != nil {
			return nil, err
		}
		return pool.LoadAll(context.Background())
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	monitoring.NewMetrics,
	func(
		pool []*recipe.Record,
		cacheRepo outbound.CacheRepository,
		metrics *monitoring.Metrics,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.PlannerService {
		return planner.NewPlannerService(pool, cacheRepo, metrics, planner.Options{
			EliteSize:       cfg.Planner.EliteSize,
			SolverTimeLimit: cfg.Planner.SolverTimeLimit,
			DefaultCalMax:   cfg.Planner.CalMaxDaily,
			DefaultProtMin:  cfg.Planner.ProtMinDaily,
			PlanCacheTTL:    cfg.Planner.PlanCacheTTL,
		}, log)
	},
)

// HealthModule provides the health check with its dependency probes
var HealthModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger, db *gorm.DB, cacheRepo outbound.CacheRepository) *healthcheck.HealthCheck {
		health := healthcheck.New(cfg.App.Version, log)
		health.Register("database", healthcheck.CheckFunc{
			Name: "database",
			Fn: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
		})
		health.Register("cache", healthcheck.CheckFunc{
			Name: "cache",
			Fn: func(ctx context.Context) error {
				_, err := cacheRepo.Get(ctx, "health:probe")
				if errors.Is(err, outbound.ErrCacheMiss) {
					return nil
				}
				return err
			},
		})
		return health
	},
)

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	handlers.NewPlannerHandlers,
	server.NewServer,
)

// LifecycleModule registers application lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks starts the HTTP server and releases resources on
// shutdown
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)
			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down application")
			if err := srv.Shutdown(ctx); err != nil {
				log.Error("failed to shutdown HTTP server", zap.Error(err))
			}
			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("failed to close database connection", zap.Error(err))
				}
			}
			_ = log.Sync()
			return nil
		},
	})
}
