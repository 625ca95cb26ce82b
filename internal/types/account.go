package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// PositionSide is the side of the single open position.
type PositionSide string

const (
	PositionSideNone PositionSide = "NONE"
	PositionSideLong PositionSide = "LONG"
)

// AgentState is the mutable account owned by one running agent.
//
// Invariant: PositionSide == NONE <=> PositionSize == 0 <=> AvgEntryPrice == 0 <=> PositionOpenTime is None.
type AgentState struct {
	// Balance is the free cash. The notional of an open position has already been debited.
	Balance float64
	// PositionSide is NONE when flat, LONG otherwise
	PositionSide PositionSide
	// PositionSize is the open quantity
	PositionSize float64
	// AvgEntryPrice is the fill price of the open position
	AvgEntryPrice float64
	// LastPrice is the close of the last processed tick
	LastPrice optional.Option[float64]
	// PositionOpenTime is when the open position was filled
	PositionOpenTime optional.Option[time.Time]
	// LastTickAt is when the last tick was processed
	LastTickAt optional.Option[time.Time]
	// TradeHistory holds every fill in chronological order
	TradeHistory []TradeEvent
	// TotalRealizedPnL is the sum of RealizedPnL over all SELL fills
	TotalRealizedPnL float64
}

// NewAgentState returns a flat account holding the given cash balance.
func NewAgentState(balance float64) AgentState {
	return AgentState{
		Balance:          balance,
		PositionSide:     PositionSideNone,
		PositionSize:     0,
		AvgEntryPrice:    0,
		LastPrice:        optional.None[float64](),
		PositionOpenTime: optional.None[time.Time](),
		LastTickAt:       optional.None[time.Time](),
		TradeHistory:     make([]TradeEvent, 0),
		TotalRealizedPnL: 0,
	}
}

// IsFlat reports whether there is no open position.
func (s AgentState) IsFlat() bool {
	return s.PositionSide == PositionSideNone
}

// Equity returns the balance plus the market value of the open position at the last price.
// No separate unrealized P&L term is added because the entry notional was already debited from Balance.
func (s AgentState) Equity() float64 {
	if s.PositionSide == PositionSideNone || s.LastPrice.IsNone() || s.PositionSize == 0 {
		return s.Balance
	}

	return s.Balance + s.PositionSize*s.LastPrice.Unwrap()
}

// AccountState is the read-only snapshot of an agent account returned to clients.
type AccountState struct {
	Balance          float64                    `json:"balance" yaml:"balance"`
	Equity           float64                    `json:"equity" yaml:"equity"`
	PositionSide     PositionSide               `json:"position_side" yaml:"position_side"`
	PositionSize     float64                    `json:"position_size" yaml:"position_size"`
	AvgEntryPrice    float64                    `json:"avg_entry_price" yaml:"avg_entry_price"`
	LastPrice        optional.Option[float64]   `json:"last_price" yaml:"last_price"`
	UpdatedAt        time.Time                  `json:"updated_at" yaml:"updated_at"`
	RealizedPnL      float64                    `json:"realized_pnl" yaml:"realized_pnl"`
	PositionOpenTime optional.Option[time.Time] `json:"position_open_time" yaml:"position_open_time"`
	// TakeProfitPrice, StopLossPrice and PositionNotional are only set while LONG with a positive size.
	TakeProfitPrice  optional.Option[float64] `json:"take_profit_price" yaml:"take_profit_price"`
	StopLossPrice    optional.Option[float64] `json:"stop_loss_price" yaml:"stop_loss_price"`
	PositionNotional optional.Option[float64] `json:"position_notional" yaml:"position_notional"`
}
