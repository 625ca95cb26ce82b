package stats

import (
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-paper-agent/internal/clock"
	"github.com/rxtech-lab/argo-paper-agent/internal/logger"
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Accumulator holds running statistics for round trips.
type Accumulator struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	RealizedPnL   decimal.Decimal
	UnrealizedPnL float64
	MaxProfit     float64
	MaxLoss       float64
	MaxDrawdown   float64
	PeakPnL       decimal.Decimal
	HoldingTimes  []int // in seconds
}

// Tracker tracks round trip statistics of one agent session.
type Tracker struct {
	strategy       string
	initialBalance float64
	sessionStart   time.Time
	symbol         string
	equity         float64

	// openedAt is the fill time of the BUY leg of the current round trip
	openedAt optional.Option[time.Time]

	acc *Accumulator

	statsOutputPath string

	clock  clock.Clock
	mu     sync.Mutex
	logger *logger.Logger
}

// NewTracker creates a tracker for a session starting now.
func NewTracker(log *logger.Logger, clk clock.Clock, strategy string, initialBalance float64) *Tracker {
	return &Tracker{
		strategy:        strategy,
		initialBalance:  initialBalance,
		sessionStart:    clk.Now(),
		symbol:          "",
		equity:          initialBalance,
		openedAt:        optional.None[time.Time](),
		acc:             newAccumulator(),
		statsOutputPath: "",
		clock:           clk,
		mu:              sync.Mutex{},
		logger:          log,
	}
}

// newAccumulator creates a new initialized Accumulator.
func newAccumulator() *Accumulator {
	return &Accumulator{
		TotalTrades:   0,
		WinningTrades: 0,
		LosingTrades:  0,
		RealizedPnL:   decimal.Zero,
		UnrealizedPnL: 0,
		MaxProfit:     0,
		MaxLoss:       0,
		MaxDrawdown:   0,
		PeakPnL:       decimal.Zero,
		HoldingTimes:  make([]int, 0),
	}
}

// SetOutputPath sets the YAML file WriteStatsYAML writes to.
func (t *Tracker) SetOutputPath(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.statsOutputPath = path
}

// RecordTrade records a fill. A SELL closes a round trip and updates the statistics.
func (t *Tracker) RecordTrade(trade types.TradeEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.symbol = trade.Symbol

	if trade.Side == types.TradeSideBuy {
		t.openedAt = optional.Some(trade.Timestamp)

		return
	}

	t.updateAccumulator(t.acc, trade)
	t.openedAt = optional.None[time.Time]()

	t.logger.Debug("Round trip recorded",
		zap.String("trade_id", trade.ID),
		zap.Float64("pnl", trade.RealizedPnL),
		zap.Int("total_trades", t.acc.TotalTrades),
	)
}

// updateAccumulator updates an accumulator with a closing fill.
//
//nolint:funcorder // helper method used by RecordTrade
func (t *Tracker) updateAccumulator(acc *Accumulator, trade types.TradeEvent) {
	acc.TotalTrades++
	acc.RealizedPnL = acc.RealizedPnL.Add(decimal.NewFromFloat(trade.RealizedPnL))

	if trade.RealizedPnL > 0 {
		acc.WinningTrades++
	} else if trade.RealizedPnL < 0 {
		acc.LosingTrades++
	}

	if trade.RealizedPnL > acc.MaxProfit {
		acc.MaxProfit = trade.RealizedPnL
	}

	if trade.RealizedPnL < acc.MaxLoss {
		acc.MaxLoss = trade.RealizedPnL
	}

	if acc.RealizedPnL.GreaterThan(acc.PeakPnL) {
		acc.PeakPnL = acc.RealizedPnL
	}

	drawdown := acc.PeakPnL.Sub(acc.RealizedPnL).InexactFloat64()
	if drawdown > acc.MaxDrawdown {
		acc.MaxDrawdown = drawdown
	}

	if t.openedAt.IsSome() {
		holdingTime := int(trade.Timestamp.Sub(t.openedAt.Unwrap()).Seconds())
		if holdingTime >= 0 {
			acc.HoldingTimes = append(acc.HoldingTimes, holdingTime)
		}
	}
}

// UpdateAccount records the account equity and unrealized P&L after a tick.
func (t *Tracker) UpdateAccount(equity float64, unrealizedPnL float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.equity = equity
	t.acc.UnrealizedPnL = unrealizedPnL
}

// Reset starts a new session, dropping every recorded round trip.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.acc = newAccumulator()
	t.sessionStart = t.clock.Now()
	t.symbol = ""
	t.equity = t.initialBalance
	t.openedAt = optional.None[time.Time]()

	t.logger.Info("Stats tracker reset", zap.Time("session_start", t.sessionStart))
}

// GetStats returns the statistics of the current session.
func (t *Tracker) GetStats() types.TradeStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.buildTradeStats(t.acc)
}

// buildTradeStats builds TradeStats from an accumulator.
//
//nolint:funcorder // helper method used by GetStats and WriteStatsYAML
func (t *Tracker) buildTradeStats(acc *Accumulator) types.TradeStats {
	winRate := 0.0
	if acc.TotalTrades > 0 {
		winRate = float64(acc.WinningTrades) / float64(acc.TotalTrades)
	}

	holdingTime := types.TradeHoldingTime{
		Min: 0,
		Max: 0,
		Avg: 0,
	}

	if len(acc.HoldingTimes) > 0 {
		minTime := acc.HoldingTimes[0]
		maxTime := acc.HoldingTimes[0]
		totalTime := 0

		for _, h := range acc.HoldingTimes {
			totalTime += h
			if h < minTime {
				minTime = h
			}

			if h > maxTime {
				maxTime = h
			}
		}

		holdingTime.Min = minTime
		holdingTime.Max = maxTime
		holdingTime.Avg = totalTime / len(acc.HoldingTimes)
	}

	realized := acc.RealizedPnL.InexactFloat64()

	return types.TradeStats{
		SessionStart:   t.sessionStart,
		LastUpdated:    t.clock.Now(),
		Symbol:         t.symbol,
		Strategy:       t.strategy,
		InitialBalance: t.initialBalance,
		Equity:         t.equity,
		TradeResult: types.TradeResult{
			NumberOfTrades:        acc.TotalTrades,
			NumberOfWinningTrades: acc.WinningTrades,
			NumberOfLosingTrades:  acc.LosingTrades,
			WinRate:               winRate,
			MaxDrawdown:           acc.MaxDrawdown,
		},
		TradeHoldingTime: holdingTime,
		TradePnl: types.TradePnl{
			RealizedPnL:   realized,
			UnrealizedPnL: acc.UnrealizedPnL,
			TotalPnL:      realized + acc.UnrealizedPnL,
			MaximumLoss:   acc.MaxLoss,
			MaximumProfit: acc.MaxProfit,
		},
	}
}

// WriteStatsYAML writes the current stats to the configured output path.
func (t *Tracker) WriteStatsYAML() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.statsOutputPath == "" {
		return nil // No output path configured
	}

	stats := t.buildTradeStats(t.acc)

	if err := types.WriteTradeStats(t.statsOutputPath, stats); err != nil {
		return err
	}

	t.logger.Info("Trade statistics written", zap.String("path", t.statsOutputPath))

	return nil
}

// GetStatsOutputPath returns the stats output path.
func (t *Tracker) GetStatsOutputPath() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.statsOutputPath
}
