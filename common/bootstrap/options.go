package bootstrap

import (
	"context"

	"github.com/linkhive/socialgraph/common/config"
	"github.com/linkhive/socialgraph/common/db"
	"github.com/linkhive/socialgraph/common/logger"
)

// Option configures Setup behavior
type Option func(*options)

type options struct {
	skipDB        bool
	skipPublisher bool
	skipCache     bool
	customConfig  *config.Config
	customLogger  *logger.Logger
	dbInitHook    func(context.Context, *db.DB) error
}

func defaultOptions() *options {
	return &options{}
}

// WithoutDB skips database initialization
func WithoutDB() Option {
	return func(o *options) {
		o.skipDB = true
	}
}

// WithoutPublisher skips event channel initialization
func WithoutPublisher() Option {
	return func(o *options) {
		o.skipPublisher = true
	}
}

// WithoutCache skips cache initialization
func WithoutCache() Option {
	return func(o *options) {
		o.skipCache = true
	}
}

// WithConfig overrides the environment-loaded configuration
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.customConfig = cfg
	}
}

// WithLogger overrides the default logger
func WithLogger(log *logger.Logger) Option {
	return func(o *options) {
		o.customLogger = log
	}
}

// WithDBInit runs a hook after the database connects, e.g. to apply
// the schema
func WithDBInit(hook func(context.Context, *db.DB) error) Option {
	return func(o *options) {
		o.dbInitHook = hook
	}
}
