package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gabapcia/minichain/internal/config"
	"github.com/gabapcia/minichain/internal/handlers/cli"
	"github.com/gabapcia/minichain/internal/ledger"
	"github.com/gabapcia/minichain/internal/miner"
	"github.com/gabapcia/minichain/internal/pkg/logger"
	"github.com/gabapcia/minichain/internal/pkg/telemetry"
	"github.com/gabapcia/minichain/internal/pow"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var logOutput io.Writer = os.Stderr
	if cfg.LogOutput == "stdout" {
		logOutput = os.Stdout
	}

	shutdown, err := telemetry.Init(ctx, cfg.ServiceName, cfg.TelemetryEnabled)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	// the logger bridges into the telemetry logger provider
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error(ctx, "telemetry shutdown failed", "error", err)
		}
	}()

	if err := logger.Init(logger.WithLevel(cfg.LogLevel), logger.WithOutput(logOutput)); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	puzzle := pow.New(
		pow.WithModulus(cfg.PowModulus),
		pow.WithMaxIterations(cfg.PowMaxIterations),
	)

	chain := ledger.New(
		ledger.WithProofValidator(puzzle),
		ledger.WithDigest(cfg.Digest()),
	)

	m, err := miner.New(chain, puzzle,
		miner.WithReward(cfg.MinerAccount, cfg.MinerReward),
		miner.WithAttempts(cfg.MinerAttempts),
		miner.WithInitialBudget(cfg.MinerInitialBudget),
	)
	if err != nil {
		return fmt.Errorf("init miner: %w", err)
	}

	return cli.Run(ctx, chain, puzzle, m)
}
