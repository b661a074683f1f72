package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/segyhp/pledge-engine/internal/app"
	"github.com/segyhp/pledge-engine/internal/config"
	"github.com/segyhp/pledge-engine/internal/logging"
	"github.com/segyhp/pledge-engine/internal/scheduler"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.ForProcess(cfg, os.Stdout)
	logger.Info("starting pledge scheduler", "sweep_spec", cfg.Scheduler.SweepSpec, "timezone", cfg.Scheduler.Timezone)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer rt.Close()

	c := cron.New(cron.WithLocation(cfg.GetLocation()))

	if err := scheduler.Register(ctx, c, cfg.Scheduler.SweepSpec, rt.Service, logger); err != nil {
		logger.Error("failed to schedule auto-close sweep", "error", err)
		os.Exit(1)
	}

	c.Start()
	logger.Info("scheduler started")

	// Wait for interrupt signal to gracefully shutdown
	<-ctx.Done()

	logger.Info("shutting down scheduler")
	<-c.Stop().Done()
	logger.Info("scheduler stopped")
}
