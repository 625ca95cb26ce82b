package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-paper-agent/internal/clock"
	"github.com/rxtech-lab/argo-paper-agent/internal/config"
	"github.com/rxtech-lab/argo-paper-agent/internal/logger"
	"github.com/rxtech-lab/argo-paper-agent/internal/strategy"
	"github.com/rxtech-lab/argo-paper-agent/internal/tradestore"
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRuntimeMemoryStore(t *testing.T) {
	cfg := config.Default()
	clk := clock.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	rt, err := buildRuntime(cfg, clk, logger.NewNopLogger())
	require.NoError(t, err)
	defer rt.closer()

	assert.IsType(t, &tradestore.MemoryStore{}, rt.sink)
	assert.Equal(t, strategy.RuleBasedLongName, rt.agent.StrategyName())
}

func TestBuildRuntimeDuckDBStoreWritesStats(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Agent.Strategy = strategy.MeanReversionLongName
	cfg.Server.TradeStore = config.TradeStoreDuckDB
	cfg.Server.DuckDBPath = filepath.Join(dir, "data", "trades.duckdb")
	cfg.Server.StatsOutput = filepath.Join(dir, "stats.yaml")

	clk := clock.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	rt, err := buildRuntime(cfg, clk, logger.NewNopLogger())
	require.NoError(t, err)

	assert.IsType(t, &tradestore.DuckDBStore{}, rt.sink)
	assert.Equal(t, strategy.MeanReversionLongName, rt.agent.StrategyName())

	require.NoError(t, rt.tracker.WriteStatsYAML())
	require.NoError(t, rt.closer())

	written, err := types.ReadTradeStats(cfg.Server.StatsOutput)
	require.NoError(t, err)
	assert.Equal(t, strategy.MeanReversionLongName, written.Strategy)
}

func TestBuildRuntimeUnknownStrategy(t *testing.T) {
	cfg := config.Default()
	cfg.Agent.Strategy = "does_not_exist"

	_, err := buildRuntime(cfg, clock.NewSystemClock(), logger.NewNopLogger())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeStrategyNotFound))
}
