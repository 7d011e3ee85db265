// Package redis opens go-redis clients for the document store, retrying
// with capped exponential backoff while the server comes up.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/pitch/internal/logger"
)

// ConnectOptions configures the client and the connect retry policy.
// Zero retry settings fall back to DefaultConnectOptions.
type ConnectOptions struct {
	Addr         string // ex: "localhost:6379"
	User         string
	Password     string
	RedisDB      int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int

	ConnectTimeout time.Duration // give up after this long (ex: 30s)
	RetryInterval  time.Duration // first wait between attempts, doubled after each failure
	MaxWait        time.Duration // cap on the wait between attempts
	PingTimeout    time.Duration // per attempt
	WarnThreshold  int           // failures logged at warn level before switching to error
}

// DefaultConnectOptions holds the retry policy used for zero fields.
var DefaultConnectOptions = ConnectOptions{
	ConnectTimeout: 30 * time.Second,
	RetryInterval:  2 * time.Second,
	MaxWait:        10 * time.Second,
	PingTimeout:    5 * time.Second,
	WarnThreshold:  3,
}

// withDefaults fills unset retry settings. Negative values are rejected.
func (o ConnectOptions) withDefaults() (ConnectOptions, error) {
	durations := []struct {
		name string
		v    *time.Duration
		def  time.Duration
	}{
		{"ConnectTimeout", &o.ConnectTimeout, DefaultConnectOptions.ConnectTimeout},
		{"RetryInterval", &o.RetryInterval, DefaultConnectOptions.RetryInterval},
		{"MaxWait", &o.MaxWait, DefaultConnectOptions.MaxWait},
		{"PingTimeout", &o.PingTimeout, DefaultConnectOptions.PingTimeout},
	}
	for _, d := range durations {
		switch {
		case *d.v < 0:
			return o, fmt.Errorf("%s must be >= 0, got %v", d.name, *d.v)
		case *d.v == 0:
			*d.v = d.def
		}
	}
	if o.WarnThreshold < 0 {
		return o, fmt.Errorf("WarnThreshold must be >= 0, got %d", o.WarnThreshold)
	}
	if o.Addr == "" {
		return o, errors.New("redis address is empty")
	}
	return o, nil
}

// New returns a client once the server answers PING. It keeps retrying
// until ConnectTimeout elapses or ctx is cancelled.
func New(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.User,
		Password:     opts.Password,
		DB:           opts.RedisDB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})

	if err := waitForPing(ctx, client, opts, log); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func waitForPing(parent context.Context, client *redis.Client, opts ConnectOptions, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(parent, opts.ConnectTimeout)
	defer cancel()

	log.Info("connecting to redis",
		logger.String("addr", opts.Addr),
		logger.Duration("timeout", opts.ConnectTimeout))

	start := time.Now()
	wait := opts.RetryInterval
	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, opts.PingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			log.Info("connected to redis",
				logger.String("addr", opts.Addr),
				logger.Int("attempts", attempt),
				logger.Duration("elapsed", time.Since(start)))
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Error("redis unavailable",
				logger.String("addr", opts.Addr),
				logger.Int("attempts", attempt),
				logger.Error(err))
			return fmt.Errorf("redis unavailable at %s after %d attempts: %w", opts.Addr, attempt, err)

		case <-timer.C:
			fields := []logger.Field{
				logger.String("addr", opts.Addr),
				logger.Int("attempt", attempt),
				logger.Duration("next_retry_in", wait),
				logger.Error(err),
			}
			if attempt <= opts.WarnThreshold {
				log.Warn("redis connection failed, retrying", fields...)
			} else {
				log.Error("redis still unavailable, retrying", fields...)
			}
			wait = nextBackoff(wait, opts.MaxWait)
		}
	}
}

// nextBackoff doubles wait, capped at limit.
func nextBackoff(wait, limit time.Duration) time.Duration {
	return min(wait*2, limit)
}
