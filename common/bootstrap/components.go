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

// Components holds all initialized service dependencies
type Components struct {
	Config     *config.Config
	Logger     *logger.Logger
	DB         *db.DB
	Redis      *rediscommon.Client
	Publisher  pubsub.Publisher
	Dispatcher *pubsub.Dispatcher
	Cache      cache.Cache

	// Internal
	cleanupFuncs []func() error
}

// Shutdown performs graceful shutdown of all components
// Should be called with defer after Setup()
func (c *Components) Shutdown(ctx context.Context) error {
	c.Logger.Info("shutting down components")

	var errs []error

	// Run cleanup functions in reverse order (LIFO)
	for i := len(c.cleanupFuncs) - 1; i >= 0; i-- {
		if err := c.cleanupFuncs[i](); err != nil {
			errs = append(errs, err)
			c.Logger.Error("cleanup error", "error", err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	c.Logger.Info("shutdown complete")
	return nil
}

// Health checks health of all components
func (c *Components) Health(ctx context.Context) error {
	if c.DB != nil {
		if err := c.DB.Health(ctx); err != nil {
			return fmt.Errorf("database unhealthy: %w", err)
		}
	}

	// Publisher and cache have no health probes; a broken publisher
	// only degrades to dropped events.

	return nil
}

// addCleanup registers a cleanup function
func (c *Components) addCleanup(fn func() error) {
	c.cleanupFuncs = append(c.cleanupFuncs, fn)
}
