package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type TradeHoldingTime struct {
	// Minimum holding time of a round trip in seconds
	Min int `yaml:"min" json:"min"`
	// Maximum holding time of a round trip in seconds
	Max int `yaml:"max" json:"max"`
	// Average holding time of a round trip in seconds
	Avg int `yaml:"avg" json:"avg"`
}

type TradePnl struct {
	// Realized PnL. Sum of all SELL fills' pnl.
	RealizedPnL float64 `yaml:"realized_pnl" json:"realized_pnl"`
	// Unrealized PnL of the open position at the last price.
	UnrealizedPnL float64 `yaml:"unrealized_pnl" json:"unrealized_pnl"`
	// Total PnL. RealizedPnL + UnrealizedPnL.
	TotalPnL float64 `yaml:"total_pnl" json:"total_pnl"`
	// Maximum loss. Minimum realized pnl of a single round trip.
	MaximumLoss float64 `yaml:"maximum_loss" json:"maximum_loss"`
	// Maximum profit. Maximum realized pnl of a single round trip.
	MaximumProfit float64 `yaml:"maximum_profit" json:"maximum_profit"`
}

type TradeResult struct {
	// Count of closed round trips.
	NumberOfTrades int `yaml:"number_of_trades" json:"number_of_trades"`
	// Count of round trips with positive pnl.
	NumberOfWinningTrades int `yaml:"number_of_winning_trades" json:"number_of_winning_trades"`
	// Count of round trips with negative pnl.
	NumberOfLosingTrades int `yaml:"number_of_losing_trades" json:"number_of_losing_trades"`
	// Win rate.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// Maximum drawdown of the realized pnl curve.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
}

// TradeStats summarizes the round trips of one agent session.
type TradeStats struct {
	// SessionStart is when the agent was constructed or last reset.
	SessionStart time.Time `yaml:"session_start" json:"session_start"`
	// LastUpdated is when these statistics were built.
	LastUpdated time.Time `yaml:"last_updated" json:"last_updated"`
	// Symbol of the last traded instrument.
	Symbol string `yaml:"symbol" json:"symbol"`
	// Strategy is the registered name of the strategy in use.
	Strategy string `yaml:"strategy" json:"strategy"`
	// InitialBalance is the configured starting cash.
	InitialBalance float64 `yaml:"initial_balance" json:"initial_balance"`
	// Equity is the account equity when these statistics were built.
	Equity float64 `yaml:"equity" json:"equity"`

	TradeResult      TradeResult      `yaml:"trade_result" json:"trade_result"`
	TradeHoldingTime TradeHoldingTime `yaml:"trade_holding_time" json:"trade_holding_time"`
	TradePnl         TradePnl         `yaml:"trade_pnl" json:"trade_pnl"`
}

// WriteTradeStats writes trade statistics to a YAML file.
func WriteTradeStats(path string, stats TradeStats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal trade stats to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write trade stats to file: %w", err)
	}

	return nil
}

// ReadTradeStats reads trade statistics from a YAML file.
func ReadTradeStats(path string) (TradeStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TradeStats{}, fmt.Errorf("failed to read trade stats file: %w", err)
	}

	var stats TradeStats
	if err := yaml.Unmarshal(data, &stats); err != nil {
		return TradeStats{}, fmt.Errorf("failed to unmarshal trade stats: %w", err)
	}

	return stats, nil
}
