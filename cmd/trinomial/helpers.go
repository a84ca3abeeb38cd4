package main

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/trinomial"
	"github.com/aretw0/trinomial/internal/config"
	"github.com/aretw0/trinomial/pkg/adapters/memory"
	"github.com/aretw0/trinomial/pkg/adapters/postgres"
	"github.com/aretw0/trinomial/pkg/adapters/redis"
	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/aretw0/trinomial/pkg/persistence/middleware"
	"github.com/aretw0/trinomial/pkg/ports"
	"github.com/spf13/cobra"
)

// openStore builds the configured history store. The returned closer is never nil.
func openStore(ctx context.Context, c *config.Config) (ports.ResultStore, func() error, error) {
	noop := func() error { return nil }

	switch driver := c.StoreDriver(); driver {
	case config.DriverNone:
		return nil, noop, nil
	case config.DriverMemory:
		return memory.NewStore(memory.WithCapacity(c.Store.Capacity)), noop, nil
	case config.DriverRedis:
		store, err := redis.New(c.Store.RedisURL,
			redis.WithPrefix(c.Store.Prefix),
			redis.WithTTL(c.Store.TTL),
			redis.WithCapacity(c.Store.Capacity),
		)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case config.DriverPostgres:
		store, err := postgres.Open(ctx, c.Store.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", driver)
	}
}

// newEngine wires config, store and hooks into an engine.
// mws wrap the store inside the logging middleware.
func newEngine(ctx context.Context, hooks domain.LifecycleHooks, mws ...middleware.Middleware) (*trinomial.Engine, func() error, error) {
	store, closer, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	opts := []trinomial.Option{
		trinomial.WithLogger(logger),
		trinomial.WithNotation(domain.ParseNotation(cfg.Notation)),
		trinomial.WithSearchLimit(cfg.SearchLimit),
		trinomial.WithLifecycleHooks(hooks),
	}
	if store != nil {
		store = middleware.Chain(store, append([]middleware.Middleware{middleware.Logging(logger)}, mws...)...)
		opts = append(opts, trinomial.WithStore(store))
	}
	logger.Debug("engine ready", "store", cfg.StoreDriver(), "notation", cfg.Notation)
	return trinomial.New(opts...), closer, nil
}

// terminalNotation is plain unless --notation was given explicitly.
func terminalNotation(cmd *cobra.Command) domain.Notation {
	if cmd.Flags().Changed("notation") {
		return domain.ParseNotation(cfg.Notation)
	}
	return domain.NotationPlain
}

func closeQuietly(closer func() error) {
	if err := closer(); err != nil {
		logger.Warn("failed to close store", "err", err)
	}
}

func fprintf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
