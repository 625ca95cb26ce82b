package types

import "time"

// TradeSide is the side of a fill.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// CloseReason is the reason the account closed a position.
type CloseReason string

const (
	CloseReasonTakeProfit CloseReason = "TAKE_PROFIT"
	CloseReasonStopLoss   CloseReason = "STOP_LOSS"
	CloseReasonTimeExit   CloseReason = "TIME_EXIT"
)

// TradeEvent records a single fill. It is created exactly once and never mutated.
type TradeEvent struct {
	ID     string    `json:"id" yaml:"id"`
	Symbol string    `json:"symbol" yaml:"symbol"`
	Side   TradeSide `json:"side" yaml:"side"`
	Price  float64   `json:"price" yaml:"price"`
	Volume float64   `json:"volume" yaml:"volume"`
	// RealizedPnL is (exit - entry) * volume for SELL fills and always 0 for BUY fills.
	RealizedPnL       float64   `json:"realized_pnl" yaml:"realized_pnl"`
	BalanceAfter      float64   `json:"balance_after" yaml:"balance_after"`
	PositionSizeAfter float64   `json:"position_size_after" yaml:"position_size_after"`
	Timestamp         time.Time `json:"timestamp" yaml:"timestamp"`
	Reason            string    `json:"reason" yaml:"reason"`
}

// Notional returns the cash value of the fill.
func (t TradeEvent) Notional() float64 {
	return t.Price * t.Volume
}
