package feed

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
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
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ReplayTestSuite struct {
	suite.Suite
	clock  *clock.ManualClock
	hub    *server.Hub
	http   *httptest.Server
	client *AgentClient
}

func TestReplaySuite(t *testing.T) {
	suite.Run(t, new(ReplayTestSuite))
}

func (suite *ReplayTestSuite) startAgent(agentVersion string) {
	suite.clock = clock.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	suite.startAgentWith(agentVersion, config.Default().Agent, suite.clock)
}

func (suite *ReplayTestSuite) startAgentWith(agentVersion string, cfg config.AgentConfig, clk clock.Clock) {
	log := logger.NewNopLogger()

	strat := strategy.NewRuleBasedLong()
	tracker := stats.NewTracker(log, clk, strat.Name(), cfg.InitialBalance)
	ag := agent.NewAgent(cfg, strat, risk.NewRiskSizer(cfg), tradestore.NewMemoryStore(), clk, tracker, log)

	suite.hub = server.NewHub(log)
	suite.http = httptest.NewServer(server.NewServer(ag, suite.hub, agentVersion, log).Handler())
	suite.client = NewAgentClient(suite.http.URL)
}

func (suite *ReplayTestSuite) TearDownTest() {
	if suite.http != nil {
		suite.hub.Close()
		suite.http.Close()
		suite.http = nil
	}
}

func (suite *ReplayTestSuite) writeCSV(content string) string {
	path := filepath.Join(suite.T().TempDir(), "ticks.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0644))

	return path
}

func (suite *ReplayTestSuite) TestClientRoundTrip() {
	suite.startAgent("v0.1.0")
	ctx := context.Background()

	health, err := suite.client.Health(ctx)
	suite.Require().NoError(err)
	suite.Equal("ok", health.Status)
	suite.Equal(strategy.RuleBasedLongName, health.Strategy)

	decision, err := suite.client.SendTick(ctx, types.MarketTick{
		Symbol:    "BTCUSDT",
		Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Open:      100,
		High:      100,
		Low:       100,
		Close:     100,
		Volume:    5,
	})
	suite.Require().NoError(err)
	suite.Require().Len(decision.Trades, 1)
	suite.Equal(types.TradeSideBuy, decision.Trades[0].Side)

	state, err := suite.client.State(ctx)
	suite.Require().NoError(err)
	suite.Equal(types.PositionSideLong, state.PositionSide)
	suite.InDelta(50.0, state.PositionSize, 1e-9)

	trades, err := suite.client.Trades(ctx)
	suite.Require().NoError(err)
	suite.Len(trades, 1)

	tradeStats, err := suite.client.Stats(ctx)
	suite.Require().NoError(err)
	suite.Equal(strategy.RuleBasedLongName, tradeStats.Strategy)

	reset, err := suite.client.Reset(ctx)
	suite.Require().NoError(err)
	suite.Equal(types.PositionSideNone, reset.PositionSide)
	suite.Equal(10000.0, reset.Balance)
}

func (suite *ReplayTestSuite) TestSendTickSurfacesAPIError() {
	suite.startAgent("v0.1.0")

	_, err := suite.client.SendTick(context.Background(), types.MarketTick{
		Symbol: "BTCUSDT",
		Close:  -1,
	})
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeFeedRequestFailed))
	suite.Contains(err.Error(), "400")
}

func (suite *ReplayTestSuite) TestClientUnreachableAgent() {
	client := NewAgentClient("http://127.0.0.1:1")

	_, err := client.Health(context.Background())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeFeedRequestFailed))
}

const takeProfitCSV = `timestamp,open,high,low,close,volume
2025-01-01 00:00:00,100,100,100,100,5
2025-01-01 00:00:10,100.8,100.8,100.8,100.8,5
2025-01-01 00:00:20,100.8,100.8,100.8,100.8,0.5
`

func (suite *ReplayTestSuite) TestReplayPacingPassesGracePeriod() {
	suite.startAgent("v0.1.0")

	path := suite.writeCSV(takeProfitCSV)

	var (
		progress []int
		waits    []time.Duration
	)

	replayer := NewReplayer(suite.client, logger.NewNopLogger(), func(done, total int, _ types.BotDecision) {
		suite.Equal(3, total)
		progress = append(progress, done)
	}, WithSpeed(1))
	replayer.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		suite.clock.Advance(d)

		return nil
	}

	result, err := replayer.Run(context.Background(), NewCSVSource(path, "BTCUSDT", logger.NewNopLogger()))
	suite.Require().NoError(err)

	suite.Equal([]int{1, 2, 3}, progress)
	suite.Equal([]time.Duration{10 * time.Second, 10 * time.Second}, waits)
	suite.Equal(3, result.Ticks)
	suite.Equal(2, result.Trades)
	suite.Equal(types.PositionSideNone, result.Final.PositionSide)
	suite.InDelta(10040.0, result.Final.Balance, 1e-6)

	trades, err := suite.client.Trades(context.Background())
	suite.Require().NoError(err)
	suite.Require().Len(trades, 2)
	suite.Equal(string(types.CloseReasonTakeProfit), trades[1].Reason)
}

func (suite *ReplayTestSuite) TestReplayWithoutPacingStaysInGracePeriod() {
	suite.startAgent("v0.1.0")

	path := suite.writeCSV(takeProfitCSV)

	result, err := NewReplayer(suite.client, logger.NewNopLogger(), nil).
		Run(context.Background(), NewCSVSource(path, "BTCUSDT", logger.NewNopLogger()))
	suite.Require().NoError(err)

	suite.Equal(1, result.Trades)
	suite.Equal(types.PositionSideLong, result.Final.PositionSide)
}

func (suite *ReplayTestSuite) TestReplayPacedAgainstWallClock() {
	cfg := config.Default().Agent
	cfg.MinTimeInPositionSeconds = 1
	suite.startAgentWith("v0.1.0", cfg, clock.NewSystemClock())

	// 12s timestamp gaps at 10x speed leave 1.2s between requests
	path := suite.writeCSV(`timestamp,open,high,low,close,volume
2025-01-01 00:00:00,100,100,100,100,5
2025-01-01 00:00:12,100.8,100.8,100.8,100.8,5
2025-01-01 00:00:24,90,90,90,90,0.5
`)

	started := time.Now()
	result, err := NewReplayer(suite.client, logger.NewNopLogger(), nil, WithSpeed(10)).
		Run(context.Background(), NewCSVSource(path, "BTCUSDT", logger.NewNopLogger()))
	suite.Require().NoError(err)

	suite.GreaterOrEqual(time.Since(started), 2400*time.Millisecond)
	suite.Equal(3, result.Ticks)
	suite.Equal(2, result.Trades)
	suite.Equal(types.PositionSideNone, result.Final.PositionSide)
}

func (suite *ReplayTestSuite) TestReplayDelays() {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := types.MarketTick{Timestamp: at}
	next := types.MarketTick{Timestamp: at.Add(time.Minute)}

	tests := []struct {
		name     string
		opts     []ReplayOption
		prev     types.MarketTick
		next     types.MarketTick
		expected time.Duration
	}{
		{name: "no pacing", prev: prev, next: next, expected: 0},
		{name: "real time", opts: []ReplayOption{WithSpeed(1)}, prev: prev, next: next, expected: time.Minute},
		{name: "sixty times faster", opts: []ReplayOption{WithSpeed(60)}, prev: prev, next: next, expected: time.Second},
		{name: "out of order timestamps", opts: []ReplayOption{WithSpeed(1)}, prev: next, next: prev, expected: 0},
		{name: "fixed interval wins", opts: []ReplayOption{WithSpeed(60), WithFixedInterval(6 * time.Second)}, prev: prev, next: next, expected: 6 * time.Second},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			replayer := NewReplayer(nil, logger.NewNopLogger(), nil, tt.opts...)
			suite.Equal(tt.expected, replayer.delay(tt.prev, tt.next))
		})
	}
}

func (suite *ReplayTestSuite) TestReplayCancelledWhileWaiting() {
	suite.startAgent("v0.1.0")

	path := suite.writeCSV(takeProfitCSV)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// cancel once the first tick is in, while the replayer waits 10s for the second
	stopAfterFirst := func(done, _ int, _ types.BotDecision) {
		if done == 1 {
			cancel()
		}
	}

	started := time.Now()
	result, err := NewReplayer(suite.client, logger.NewNopLogger(), stopAfterFirst, WithSpeed(1)).
		Run(ctx, NewCSVSource(path, "BTCUSDT", logger.NewNopLogger()))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeFeedRequestFailed))
	suite.Less(time.Since(started), 5*time.Second)
	suite.Equal(1, result.Ticks)
}

func (suite *ReplayTestSuite) TestReplayRejectsIncompatibleAgent() {
	suite.startAgent("v2.0.0")

	path := suite.writeCSV("timestamp,open,high,low,close,volume\n2025-01-01 00:00:00,100,100,100,100,5\n")

	_, err := NewReplayer(suite.client, logger.NewNopLogger(), nil).
		Run(context.Background(), NewCSVSource(path, "BTCUSDT", logger.NewNopLogger()))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeVersionMismatch))

	state, err := suite.client.State(context.Background())
	suite.Require().NoError(err)
	suite.True(state.LastPrice.IsNone())
}

func (suite *ReplayTestSuite) TestReplayStopsOnCancelledContext() {
	suite.startAgent("v0.1.0")

	path := suite.writeCSV("timestamp,open,high,low,close,volume\n2025-01-01 00:00:00,100,100,100,100,5\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReplayer(suite.client, logger.NewNopLogger(), nil).
		Run(ctx, NewCSVSource(path, "BTCUSDT", logger.NewNopLogger()))
	suite.Require().Error(err)
}
