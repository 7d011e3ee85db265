package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/pitch/internal/auth"
	"github.com/MrSnakeDoc/pitch/internal/config"
	"github.com/MrSnakeDoc/pitch/internal/content"
	"github.com/MrSnakeDoc/pitch/internal/httpserver"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/redis"
	"github.com/MrSnakeDoc/pitch/internal/registration"
	"github.com/MrSnakeDoc/pitch/internal/scheduler"
	"github.com/MrSnakeDoc/pitch/internal/seed"
	"github.com/MrSnakeDoc/pitch/internal/store"
	"github.com/MrSnakeDoc/pitch/internal/store/backend"
	"github.com/MrSnakeDoc/pitch/internal/utils"
	"github.com/MrSnakeDoc/pitch/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	store    store.DocumentStore
	reloader *scheduler.ContentReloader
	sessions *scheduler.SessionCollector
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg *config.Config) logger.Logger {
	return logger.NewWithOptions(logger.Options{
		Level:      cfg.LogLevel,
		Pretty:     cfg.PrettyLog,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
}

// OpenStore opens the configured document store.
func OpenStore(ctx context.Context, cfg *config.Config, log logger.Logger) (store.DocumentStore, error) {
	return backend.Open(ctx, backend.Options{
		Driver:     cfg.StoreDriver,
		SQLitePath: cfg.SQLitePath,
		Redis: redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		},
	}, log)
}

func New() *App {
	cfg := config.Load()
	loggerClient := NewLogger(cfg)
	loggerClient.Debugf("configuration: %+v", cfg.Redacted())

	// A missing or unreachable store is not fatal: the site keeps serving
	// the bundled content and every write reports "not configured".
	docs, storeErr := OpenStore(context.Background(), cfg, loggerClient)
	switch {
	case storeErr == nil:
		loggerClient.Info("document store ready", logger.String("driver", cfg.StoreDriver))
	case errors.Is(storeErr, store.ErrNotConfigured):
		loggerClient.Warn("no document store configured, serving bundled content read-only",
			logger.Error(storeErr))
	default:
		loggerClient.Error("document store unavailable, serving bundled content read-only",
			logger.String("driver", cfg.StoreDriver),
			logger.Error(storeErr))
	}

	site := content.NewSite(docs, seed.NewLoader(cfg.SeedDir), loggerClient)
	authSvc := auth.NewService(docs, loggerClient, auth.Config{SessionTTL: cfg.SessionTTL})

	reloadTrigger := make(chan struct{}, 1)
	reloader := scheduler.NewContentReloader(site.Loadables(), loggerClient, cfg.ReloadInterval, reloadTrigger)

	var sessions *scheduler.SessionCollector
	if docs != nil {
		sessions = scheduler.NewSessionCollector(authSvc, loggerClient, cfg.SessionGCInterval)
	}

	d := deps.Deps{
		Logger:                loggerClient,
		StartTime:             time.Now(),
		Version:               version.Version,
		Commit:                version.Commit,
		BuildDate:             version.BuildDate,
		GoVersion:             version.GoVersion,
		TimeNow:               time.Now,
		AllowedHosts:          cfg.AllowedHosts,
		AllowedCIDRS:          cfg.AllowedCIDRS,
		AdminCIDRS:            cfg.AdminCIDRS,
		CORSOrigins:           cfg.CORSOrigins,
		TrustProxy:            cfg.TrustProxy,
		Store:                 docs,
		StoreDriver:           cfg.StoreDriver,
		StoreErr:              storeErr,
		Site:                  site,
		Auth:                  authSvc,
		Registrations:         registration.NewService(docs, loggerClient),
		ReloadTrigger:         reloadTrigger,
		SessionTTL:            cfg.SessionTTL,
		RegistrationBurst:     cfg.RegistrationBurst,
		RegistrationPerMinute: cfg.RegistrationPerMinute,
		AuthRequestsPerMinute: cfg.AuthRequestsPerMinute,
	}

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   httpserver.New(cfg, loggerClient, d),
		store:    docs,
		reloader: reloader,
		sessions: sessions,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting pitch v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("pitch %s", version.String())
	defer func() { _ = a.logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial load happens inside Start; failures leave the seed fallback.
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start content reloader: %w", err)
	}
	a.logger.Info("content reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	if a.sessions != nil {
		if err := a.sessions.Start(ctx); err != nil {
			return fmt.Errorf("failed to start session collector: %w", err)
		}
		a.logger.Info("session collector started",
			logger.Duration("interval", a.cfg.SessionGCInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	if a.sessions != nil {
		a.sessions.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.store != nil {
		utils.CloseLogged(a.store, a.logger, "document store")
	}

	a.logger.Info("✅ pitch stopped cleanly")
	return nil
}
