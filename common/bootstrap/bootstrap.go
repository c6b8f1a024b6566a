package bootstrap

import (
	"context"
	"fmt"

	"github.com/linkhive/socialgraph/common/cache"
	"github.com/linkhive/socialgraph/common/config"
	"github.com/linkhive/socialgraph/common/db"
	"github.com/linkhive/socialgraph/common/logger"
	"github.com/linkhive/socialgraph/common/pubsub"
	rediscommon "github.com/linkhive/socialgraph/common/redis"
)

// Setup initializes all service components
// This is the main entry point for all services
func Setup(ctx context.Context, serviceName string, opts ...Option) (*Components, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	components := &Components{
		cleanupFuncs: make([]func() error, 0),
	}

	// 1. Load configuration
	var err error
	if options.customConfig != nil {
		components.Config = options.customConfig
	} else {
		components.Config, err = config.Load(serviceName)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// 2. Initialize logger
	if options.customLogger != nil {
		components.Logger = options.customLogger
	} else {
		components.Logger = logger.New(
			components.Config.Service.LogLevel,
			components.Config.Service.LogFormat,
		)
	}

	components.Logger.Info("initializing service",
		"service", serviceName,
		"environment", components.Config.Service.Environment,
	)

	// 3. Initialize database
	if !options.skipDB {
		components.Logger.Info("connecting to database")
		components.DB, err = db.New(ctx, components.Config, components.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		components.addCleanup(func() error {
			components.DB.Close()
			return nil
		})

		if options.dbInitHook != nil {
			components.Logger.Info("running database init hook")
			if err := options.dbInitHook(ctx, components.DB); err != nil {
				components.Shutdown(ctx)
				return nil, fmt.Errorf("database init hook failed: %w", err)
			}
		}
	}

	// 4. Initialize event channel and dispatcher
	if !options.skipPublisher {
		components.Logger.Info("initializing event channel",
			"backend", components.Config.PubSub.Backend,
		)

		switch components.Config.PubSub.Backend {
		case "redis":
			redisRaw, err := rediscommon.Connect(ctx, components.Config)
			if err != nil {
				components.Shutdown(ctx)
				return nil, fmt.Errorf("failed to connect to redis: %w", err)
			}
			components.Redis = rediscommon.NewClient(redisRaw, components.Logger)
			components.Publisher = pubsub.NewRedisPublisher(components.Redis)
		case "kafka":
			components.Publisher, err = pubsub.NewKafkaPublisher(components.Config.PubSub.Brokers)
			if err != nil {
				components.Shutdown(ctx)
				return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
			}
		case "memory":
			components.Publisher = pubsub.NewMemoryBroker(components.Logger)
		default:
			components.Shutdown(ctx)
			return nil, fmt.Errorf("unknown pubsub backend: %s", components.Config.PubSub.Backend)
		}

		components.Dispatcher = pubsub.NewDispatcher(
			components.Publisher,
			components.Logger,
			components.Config.PubSub.BufferSize,
		)

		components.addCleanup(func() error {
			components.Logger.Info("closing event channel")
			if err := components.Dispatcher.Close(); err != nil {
				return err
			}
			return components.Publisher.Close()
		})
	}

	// 5. Initialize cache
	if !options.skipCache && components.Config.Cache.Enabled {
		components.Logger.Info("initializing cache",
			"default_ttl", components.Config.Cache.DefaultTTL,
		)

		components.Cache = cache.NewMemoryCache(components.Logger)

		components.addCleanup(func() error {
			return components.Cache.Close()
		})
	}

	components.Logger.Info("service initialized", "service", serviceName)

	return components, nil
}
