package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/segyhp/pledge-engine/internal/app"
	"github.com/segyhp/pledge-engine/internal/cli"
	"github.com/segyhp/pledge-engine/internal/config"
	"github.com/segyhp/pledge-engine/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(openEngine)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func openEngine(ctx context.Context) (cli.Engine, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	logger := logging.ForProcess(cfg, os.Stderr)

	rt, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	return rt.Service, rt.Close, nil
}
