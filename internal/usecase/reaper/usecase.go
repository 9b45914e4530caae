package reaper

import (
	"context"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Games ends idle games; domain.GameUseCase is one.
type Games interface {
	EndIdle(ctx context.Context, deadline time.Time) int
}

// useCase periodically ends games nobody touched for longer than the idle
// timeout.
type useCase struct {
	games       Games
	idleTimeout time.Duration
	period      time.Duration
	running     *atomic.Bool
	now         func() time.Time
	logger      *zap.Logger
}

func New(games Games, idleTimeout time.Duration, period time.Duration, logger *zap.Logger) *useCase {
	return &useCase{
		games:       games,
		idleTimeout: idleTimeout,
		period:      period,
		running:     atomic.NewBool(false),
		now:         time.Now,
		logger:      logger,
	}
}

// Run sweeps every period until ctx is done.
func (u *useCase) Run(ctx context.Context) error {
	ticker := time.NewTicker(u.period)
	defer ticker.Stop()
	u.logger.Info("reaper started",
		zap.Duration("period", u.period),
		zap.Duration("idle timeout", u.idleTimeout),
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			u.Sweep(ctx, u.now())
		}
	}
}

// Sweep ends the games idle at now. A sweep started while another one is
// still running is skipped and reports -1.
func (u *useCase) Sweep(ctx context.Context, now time.Time) int {
	if !u.running.CompareAndSwap(false, true) {
		u.logger.Warn("previous sweep is still running, skipping")
		return -1
	}
	defer u.running.Store(false)
	ended := u.games.EndIdle(ctx, now.Add(-u.idleTimeout))
	if ended > 0 {
		u.logger.Info("idle games ended", zap.Int("count", ended))
	}
	return ended
}
