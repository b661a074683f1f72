// Package scheduler runs the auto-close sweep on a cron schedule.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper is the engine operation the scheduler drives.
type Sweeper interface {
	SweepAutoClose(ctx context.Context) (int, error)
}

// Register adds the sweep job to c. Overlapping runs are skipped.
func Register(ctx context.Context, c *cron.Cron, spec string, sweeper Sweeper, logger *slog.Logger) error {
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(SweepJob(ctx, sweeper, logger))
	_, err := c.AddJob(spec, job)
	return err
}

// SweepJob wraps one sweep run as a cron job.
func SweepJob(ctx context.Context, sweeper Sweeper, logger *slog.Logger) cron.Job {
	return cron.FuncJob(func() {
		started := time.Now()
		closed, err := sweeper.SweepAutoClose(ctx)
		if err != nil {
			logger.Error("scheduled auto-close sweep failed", "closed", closed, "error", err)
			return
		}
		logger.Info("scheduled auto-close sweep done", "closed", closed, "duration", time.Since(started))
	})
}
