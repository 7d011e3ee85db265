// Package backend opens the configured store.DocumentStore.
package backend

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/redis"
	"github.com/MrSnakeDoc/pitch/internal/store"
	"github.com/MrSnakeDoc/pitch/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/pitch/internal/store/redis"
	"github.com/MrSnakeDoc/pitch/internal/store/sqlite"
)

const (
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
	DriverNone   = "none"
)

// Options selects and configures a backend.
type Options struct {
	Driver     string
	Redis      redis.ConnectOptions
	SQLitePath string
}

// Open returns the store for opts.Driver.
// A driver whose required settings are missing yields store.ErrNotConfigured,
// a backend that cannot be reached yields store.ErrUnavailable.
func Open(ctx context.Context, opts Options, log logger.Logger) (store.DocumentStore, error) {
	switch opts.Driver {
	case DriverMemory:
		log.Warn("using in-memory store, content is lost on restart")
		return memory.New(), nil

	case DriverSQLite:
		if opts.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite path is empty: %w", store.ErrNotConfigured)
		}
		s, err := sqlite.Open(opts.SQLitePath, sqlite.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", store.ErrUnavailable, err)
		}
		log.Info("sqlite store opened", logger.String("path", opts.SQLitePath))
		return s, nil

	case DriverRedis:
		if opts.Redis.Addr == "" {
			return nil, fmt.Errorf("redis address is empty: %w", store.ErrNotConfigured)
		}
		client, err := redis.New(ctx, opts.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", store.ErrUnavailable, err)
		}
		return redisstore.NewStore(client), nil

	case "", DriverNone:
		return nil, fmt.Errorf("no store driver selected: %w", store.ErrNotConfigured)

	default:
		return nil, fmt.Errorf("unknown store driver %q: %w", opts.Driver, store.ErrNotConfigured)
	}
}
