package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/MrSnakeDoc/pitch/internal/content"
	"github.com/MrSnakeDoc/pitch/internal/logger"
)

// ContentReloader periodically re-reads every content collection so that
// writes made by another instance or by pitchctl show up.
type ContentReloader struct {
	sources       []content.Loadable
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewContentReloader creates a reloader. manualTrigger may be nil.
func NewContentReloader(
	sources []content.Loadable,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *ContentReloader {
	return &ContentReloader{
		sources:       sources,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads everything once, then reloads on every tick or manual trigger.
// A failed initial load is logged only: lists stay empty until the store answers.
func (cr *ContentReloader) Start(ctx context.Context) error {
	if err := cr.Reload(ctx); err != nil {
		cr.logger.Warn("initial content load failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload content",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual content reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload content",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (cr *ContentReloader) Stop() {
	close(cr.stopCh)
}

// Reload loads every source. One failing collection does not stop the others.
func (cr *ContentReloader) Reload(ctx context.Context) error {
	start := time.Now()

	var errs []error
	for _, src := range cr.sources {
		if err := src.Load(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	cr.logger.Debug("content reloaded",
		logger.Int("sources", len(cr.sources)),
		logger.Int("failed", len(errs)),
		logger.Duration("elapsed", time.Since(start)))

	return errors.Join(errs...)
}
