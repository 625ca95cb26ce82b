package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rxtech-lab/argo-paper-agent/internal/agent"
	"github.com/rxtech-lab/argo-paper-agent/internal/clock"
	"github.com/rxtech-lab/argo-paper-agent/internal/config"
	"github.com/rxtech-lab/argo-paper-agent/internal/logger"
	"github.com/rxtech-lab/argo-paper-agent/internal/risk"
	"github.com/rxtech-lab/argo-paper-agent/internal/server"
	"github.com/rxtech-lab/argo-paper-agent/internal/stats"
	"github.com/rxtech-lab/argo-paper-agent/internal/strategy"
	"github.com/rxtech-lab/argo-paper-agent/internal/tradestore"
	"github.com/rxtech-lab/argo-paper-agent/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// agentRuntime holds everything serve wires together.
type agentRuntime struct {
	agent   *agent.Agent
	tracker *stats.Tracker
	sink    tradestore.TradeSink
	closer  func() error
}

// buildRuntime creates the trade sink, strategy, stats tracker and agent described by cfg.
func buildRuntime(cfg config.Config, clk clock.Clock, log *logger.Logger) (*agentRuntime, error) {
	var (
		sink   tradestore.TradeSink
		closer = func() error { return nil }
	)

	switch cfg.Server.TradeStore {
	case config.TradeStoreDuckDB:
		store, err := tradestore.NewDuckDBStore(cfg.Server.DuckDBPath, log)
		if err != nil {
			return nil, err
		}

		log.Info("Trade store opened", zap.String("kind", config.TradeStoreDuckDB), zap.String("path", store.Path()))

		sink = store
		closer = store.Close
	default:
		sink = tradestore.NewMemoryStore()
	}

	strat, err := strategy.NewDefaultRegistry(cfg.Agent).GetStrategy(cfg.Agent.Strategy)
	if err != nil {
		_ = closer()

		return nil, err
	}

	tracker := stats.NewTracker(log, clk, strat.Name(), cfg.Agent.InitialBalance)
	tracker.SetOutputPath(cfg.Server.StatsOutput)

	ag := agent.NewAgent(cfg.Agent, strat, risk.NewRiskSizer(cfg.Agent), sink, clk, tracker, log)

	return &agentRuntime{
		agent:   ag,
		tracker: tracker,
		sink:    sink,
		closer:  closer,
	}, nil
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	log, err := logger.NewLoggerWithLevel(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	for _, warning := range cfg.Warnings {
		log.Warn("Ignoring invalid environment value", zap.String("detail", warning))
	}

	rt, err := buildRuntime(cfg, clock.NewSystemClock(), log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := server.NewHub(log)
	go hub.Run(ctx)

	srv := server.NewServer(rt.agent, hub, version.GetVersion(), log)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		_ = rt.closer()

		return err
	}

	<-ctx.Done()
	log.Info("Shutting down agent server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}

	if err := rt.tracker.WriteStatsYAML(); err != nil {
		log.Error("Failed to write trade statistics", zap.Error(err))
	}

	return rt.closer()
}
