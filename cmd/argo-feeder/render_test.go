package main

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestRenderAccountFlat(t *testing.T) {
	out := renderAccount(types.AccountState{
		Balance:          10000,
		Equity:           10000,
		PositionSide:     types.PositionSideNone,
		LastPrice:        optional.None[float64](),
		UpdatedAt:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PositionOpenTime: optional.None[time.Time](),
		TakeProfitPrice:  optional.None[float64](),
		StopLossPrice:    optional.None[float64](),
		PositionNotional: optional.None[float64](),
	})

	assert.Contains(t, out, "10000.0000")
	assert.Contains(t, out, "NONE")
	assert.Contains(t, out, "2025-01-01T00:00:00Z")
}

func TestRenderAccountLong(t *testing.T) {
	out := renderAccount(types.AccountState{
		Balance:          5000,
		Equity:           10000,
		PositionSide:     types.PositionSideLong,
		PositionSize:     50,
		AvgEntryPrice:    100,
		LastPrice:        optional.Some(100.0),
		PositionOpenTime: optional.Some(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		TakeProfitPrice:  optional.Some(100.7),
		StopLossPrice:    optional.Some(99.5),
		PositionNotional: optional.Some(5000.0),
	})

	assert.Contains(t, out, "LONG")
	assert.Contains(t, out, "100.7000")
	assert.Contains(t, out, "99.5000")
}

func TestRenderTrades(t *testing.T) {
	assert.Equal(t, "No trades recorded", renderTrades(nil))

	out := renderTrades([]types.TradeEvent{
		{Symbol: "BTCUSDT", Side: types.TradeSideBuy, Price: 100, Volume: 50, Reason: "ENTRY_CONDITIONS_MET"},
		{Symbol: "BTCUSDT", Side: types.TradeSideSell, Price: 100.8, Volume: 50, RealizedPnL: 40, Reason: "TAKE_PROFIT"},
	})

	assert.Contains(t, out, "ENTRY_CONDITIONS_MET")
	assert.Contains(t, out, "TAKE_PROFIT")
	assert.Contains(t, out, "+40.0000")
}

func TestFormatPnL(t *testing.T) {
	assert.Contains(t, formatPnL(1.5), "+1.5000")
	assert.Contains(t, formatPnL(-2), "-2.0000")
	assert.Equal(t, "+0.0000", formatPnL(0))
}

func TestRenderStats(t *testing.T) {
	out := renderStats(types.TradeStats{
		Strategy: "rule_based_long",
		TradeResult: types.TradeResult{
			NumberOfTrades: 4,
			WinRate:        0.5,
		},
	})

	assert.Contains(t, out, "rule_based_long")
	assert.Contains(t, out, "50.00%")
}
