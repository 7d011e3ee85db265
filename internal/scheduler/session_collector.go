package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/pitch/internal/logger"
)

// SessionSweeper deletes expired sessions. Implemented by auth.Service.
type SessionSweeper interface {
	SweepExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

// SessionCollector handles cleanup of expired sessions
type SessionCollector struct {
	sweeper  SessionSweeper
	logger   logger.Logger
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
}

func NewSessionCollector(sweeper SessionSweeper, log logger.Logger, interval time.Duration) *SessionCollector {
	return &SessionCollector{
		sweeper:  sweeper,
		logger:   log,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic collection process
func (sc *SessionCollector) Start(ctx context.Context) error {
	if err := sc.Collect(ctx); err != nil {
		sc.logger.Warn("initial session collection failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(sc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sc.Collect(ctx); err != nil {
					sc.logger.Error("session collection failed",
						logger.Error(err))
				}
			case <-sc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the collector
func (sc *SessionCollector) Stop() {
	close(sc.stopCh)
}

// Collect removes every session expired at the current time.
func (sc *SessionCollector) Collect(ctx context.Context) error {
	n, err := sc.sweeper.SweepExpiredSessions(ctx, sc.now())
	if n > 0 {
		sc.logger.Info("expired sessions collected",
			logger.Int("deleted", n))
	} else {
		sc.logger.Debug("no sessions to collect")
	}
	return err
}
