// Package container wires the application with Uber FX
package container

import (
	"context"
	"errors"
	"fmt"

	aiapp "github.com/alchemorsel/recipe-assistant/internal/application/ai"
	"github.com/alchemorsel/recipe-assistant/internal/application/recipe"
	"github.com/alchemorsel/recipe-assistant/internal/application/user"
	domainai "github.com/alchemorsel/recipe-assistant/internal/domain/ai"
	domainrecipe "github.com/alchemorsel/recipe-assistant/internal/domain/recipe"
	aiinfra "github.com/alchemorsel/recipe-assistant/internal/infrastructure/ai"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/config"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/events"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/http/apiserver"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/monitoring"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/persistence/database"
	gormRepo "github.com/alchemorsel/recipe-assistant/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/persistence/memory"
	redisRepo "github.com/alchemorsel/recipe-assistant/internal/infrastructure/persistence/redis"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/security"
	"github.com/alchemorsel/recipe-assistant/internal/ports/inbound"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	"github.com/alchemorsel/recipe-assistant/pkg/healthcheck"
	"github.com/alchemorsel/recipe-assistant/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New returns every module of the API process, reading configuration from
// configPath. An empty path searches the default locations.
func New(configPath string) fx.Option {
	return fx.Options(
		ConfigModule(configPath),
		LoggerModule,
		MonitoringModule,
		DatabaseModule,
		CacheModule,
		RepositoryModule,
		SecurityModule,
		EventModule,
		AIModule,
		ServiceModule,
		HealthModule,
		HTTPModule,
		LifecycleModule,
	)
}

// ConfigModule provides the loader and the loaded configuration
func ConfigModule(configPath string) fx.Option {
	return fx.Provide(
		func() *config.Loader {
			return config.NewLoader(configPath)
		},
		func(l *config.Loader) (*config.Config, error) {
			return l.Load()
		},
	)
}

// LoggerModule provides the root logger and its level handle, and routes
// FX's own events through it
var LoggerModule = fx.Options(
	fx.Provide(func(cfg *config.Config) (*zap.Logger, zap.AtomicLevel, error) {
		return logger.NewWithLevel(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	}),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		l := &fxevent.ZapLogger{Logger: log.Named("fx")}
		l.UseLogLevel(zap.DebugLevel)
		return l
	}),
)

// MonitoringModule provides Prometheus metrics and OpenTelemetry tracing
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		tp, err := monitoring.NewTracingProvider(monitoring.TracingConfig{
			ServiceName:    cfg.App.Name,
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
			SamplingRate:   cfg.Monitoring.SamplingRate,
			Enabled:        cfg.Monitoring.EnableTracing,
		}, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.StopHook(tp.Shutdown))
		return tp, nil
	},
)

// DatabaseModule provides the GORM connection
var DatabaseModule = fx.Provide(
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		db, err := database.Open(cfg, log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return database.Ping(ctx, db)
			},
			OnStop: func(context.Context) error {
				return database.Close(db)
			},
		})
		return db, nil
	},
)

// CacheBackend is the configured cache. Redis is nil for the memory driver.
type CacheBackend struct {
	Repo  outbound.CacheRepository
	Redis redis.UniversalClient
}

// CacheModule provides the memory or Redis cache selected by cache.driver
var CacheModule = fx.Provide(
	NewCacheBackend,
	func(b *CacheBackend) outbound.CacheRepository {
		return b.Repo
	},
)

// NewCacheBackend builds the cache for cfg.Cache.Driver and registers its
// shutdown with the lifecycle
func NewCacheBackend(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*CacheBackend, error) {
	switch cfg.Cache.Driver {
	case "redis":
		client := redisRepo.NewClient(cfg.Redis, cfg.RedisAddr())
		repo := redisRepo.NewCacheRepository(client, cfg.Redis.KeyPrefix, log)
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := repo.Ping(ctx); err != nil {
					return fmt.Errorf("failed to connect to redis: %w", err)
				}
				return nil
			},
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
		log.Info("Using Redis cache", zap.String("addr", cfg.RedisAddr()))
		return &CacheBackend{Repo: repo, Redis: client}, nil
	case "memory":
		repo := memory.NewCacheRepository(cfg.Cache.CleanupInterval)
		lc.Append(fx.StopHook(repo.Close))
		log.Info("Using in-memory cache")
		return &CacheBackend{Repo: repo}, nil
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Cache.Driver)
	}
}

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	fx.Annotate(
		gormRepo.NewRecipeRepository,
		fx.As(new(outbound.RecipeRepository)),
	),
	fx.Annotate(
		gormRepo.NewUserRepository,
		fx.As(new(outbound.UserRepository)),
	),
)

// SecurityModule provides token issuing and request validation
var SecurityModule = fx.Provide(
	fx.Annotate(
		func(cfg *config.Config, cache outbound.CacheRepository, log *zap.Logger) (*security.AuthService, error) {
			return security.NewAuthService(cfg.Auth, cache, log)
		},
		fx.As(new(outbound.TokenIssuer)),
	),
	security.NewValidator,
)

// EventModule provides the in-process domain event dispatcher
var EventModule = fx.Options(
	fx.Provide(
		func(metrics *monitoring.MetricsCollector, log *zap.Logger) *events.Dispatcher {
			return events.NewDispatcher(metrics, log)
		},
		func(d *events.Dispatcher) outbound.EventPublisher {
			return d
		},
	),
	fx.Invoke(RegisterEventHandlers),
)

// RegisterEventHandlers subscribes the audit log to every recipe event.
// Cached cooking answers quote recipe text, so they are dropped whenever a
// recipe changes.
func RegisterEventHandlers(d *events.Dispatcher, assistant inbound.AssistantService, log *zap.Logger) {
	audit := events.AuditLog(log.Named("audit"))
	for _, name := range []string{domainrecipe.EventCreated, domainrecipe.EventUpdated, domainrecipe.EventDeleted} {
		d.Register(name, audit)
	}

	invalidate := events.InvalidateCache(assistant, string(domainai.KindAssistance)+":")
	d.Register(domainrecipe.EventUpdated, invalidate)
	d.Register(domainrecipe.EventDeleted, invalidate)
}

// Providers holds the model clients. Either may be nil.
type Providers struct {
	Primary   outbound.AIClient
	Secondary outbound.AIClient
}

// AIModule provides the model clients
var AIModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *Providers {
		primary, secondary := aiinfra.NewProviders(cfg.AI, log)
		if primary == nil {
			log.Warn("No AI provider available, answering offline")
		}
		return &Providers{Primary: primary, Secondary: secondary}
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	fx.Annotate(
		recipe.NewRecipeService,
		fx.As(new(inbound.RecipeService)),
	),
	fx.Annotate(
		user.NewUserService,
		fx.As(new(inbound.UserService)),
	),
	fx.Annotate(
		NewAssistant,
		fx.As(new(inbound.AssistantService)),
	),
)

// NewAssistant builds the assistant service from the AI configuration
func NewAssistant(
	cfg *config.Config,
	providers *Providers,
	cache outbound.CacheRepository,
	metrics *monitoring.MetricsCollector,
	log *zap.Logger,
) *aiapp.AssistantService {
	return aiapp.NewAssistantService(
		providers.Primary,
		providers.Secondary,
		cache,
		metrics,
		aiapp.Options{
			EnableCache:     cfg.AI.EnableCache,
			CacheTTL:        cfg.AI.CacheTTL,
			OfflineFallback: cfg.AI.OfflineFallback,
		},
		log,
	)
}

// HealthModule provides the health checker with every dependency registered
var HealthModule = fx.Provide(NewHealthCheck)

// NewHealthCheck registers the database, the cache and the model providers.
// Providers are non-critical since the assistant can answer offline.
func NewHealthCheck(
	cfg *config.Config,
	db *gorm.DB,
	cache *CacheBackend,
	providers *Providers,
	metrics *monitoring.MetricsCollector,
	log *zap.Logger,
) (*healthcheck.HealthCheck, error) {
	hc := healthcheck.New(cfg.App.Version, log)
	hc.SetCacheTTL(cfg.Monitoring.HealthCacheTTL)
	hc.SetObserver(metrics)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	hc.Register("database", healthcheck.NewDatabaseChecker(sqlDB))

	if cache.Redis != nil {
		hc.Register("redis", healthcheck.NewRedisChecker(cache.Redis))
	}

	for _, p := range []outbound.AIClient{providers.Primary, providers.Secondary} {
		if p != nil {
			hc.Register("ai_"+p.Name(), healthcheck.NewPingChecker(p, false))
		}
	}
	return hc, nil
}

// HTTPModule provides the API server
var HTTPModule = fx.Provide(apiserver.NewServer)

// LifecycleModule starts the server and follows configuration changes
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
	WatchConfig,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	log *zap.Logger,
	server *apiserver.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("Starting Alchemorsel recipe assistant",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("addr", server.Addr()),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Alchemorsel recipe assistant")

			err := server.Shutdown(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			_ = log.Sync()
			return err
		},
	})
}

// WatchConfig applies log level changes from the config file without a
// restart. Other settings need a restart.
func WatchConfig(loader *config.Loader, level zap.AtomicLevel, log *zap.Logger) {
	if loader.ConfigFile() == "" {
		return
	}

	loader.Watch(func(cfg *config.Config) {
		next := logger.ParseLevel(cfg.App.LogLevel)
		if next == level.Level() {
			return
		}
		level.SetLevel(next)
		log.Info("Log level changed", zap.String("level", next.String()))
	}, func(err error) {
		log.Warn("Ignoring invalid configuration change", zap.Error(err))
	})
}
