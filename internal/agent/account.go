package agent

import (
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-paper-agent/internal/config"
	"github.com/rxtech-lab/argo-paper-agent/internal/logger"
	"github.com/rxtech-lab/argo-paper-agent/internal/risk"
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
	"go.uber.org/zap"
)

// Account is the FLAT/LONG state machine around one AgentState.
// It is not safe for concurrent use; Agent serializes access to it.
type Account struct {
	cfg    config.AgentConfig
	sizer  risk.PositionSizer
	state  types.AgentState
	logger *logger.Logger
}

// NewAccount creates a flat account holding the configured initial balance.
func NewAccount(cfg config.AgentConfig, sizer risk.PositionSizer, log *logger.Logger) *Account {
	return &Account{
		cfg:    cfg,
		sizer:  sizer,
		state:  types.NewAgentState(cfg.InitialBalance),
		logger: log,
	}
}

// State returns a copy of the account state. The trade history is shared but cannot be appended to.
func (a *Account) State() types.AgentState {
	state := a.state
	state.TradeHistory = a.state.TradeHistory[:len(a.state.TradeHistory):len(a.state.TradeHistory)]

	return state
}

// ObservePrice records the close of the tick being processed.
func (a *Account) ObservePrice(price float64, at time.Time) {
	a.state.LastTickAt = optional.Some(at)
	a.state.LastPrice = optional.Some(price)
}

// Reset replaces the state with a fresh flat account.
func (a *Account) Reset() {
	a.state = types.NewAgentState(a.cfg.InitialBalance)
}

// OpenLong buys at tick.Close. It is a no-op when already in a position, when the sizer
// returns nothing, or when the balance does not cover the notional.
func (a *Account) OpenLong(tick types.MarketTick, reason string, now time.Time) optional.Option[types.TradeEvent] {
	if a.state.PositionSide != types.PositionSideNone {
		a.logger.Warn("Open long skipped: already in position",
			zap.String("side", string(a.state.PositionSide)),
		)

		return optional.None[types.TradeEvent]()
	}

	volume := a.sizer.Size(a.state.Balance, tick.Close)
	if volume <= 0 {
		a.logger.Info("Open long aborted: volume <= 0", zap.Float64("price", tick.Close))

		return optional.None[types.TradeEvent]()
	}

	notional := volume * tick.Close
	if a.state.Balance < notional {
		a.logger.Info("Open long aborted: insufficient balance",
			zap.Float64("balance", a.state.Balance),
			zap.Float64("notional", notional),
		)

		return optional.None[types.TradeEvent]()
	}

	a.logger.Info("Open long",
		zap.String("symbol", tick.Symbol),
		zap.Float64("price", tick.Close),
		zap.Float64("volume", volume),
		zap.Float64("notional", notional),
		zap.Float64("balance_before", a.state.Balance),
		zap.String("reason", reason),
	)

	a.state.Balance -= notional
	a.state.PositionSide = types.PositionSideLong
	a.state.PositionSize = volume
	a.state.AvgEntryPrice = tick.Close
	a.state.PositionOpenTime = optional.Some(now)

	trade := types.TradeEvent{
		ID:                uuid.NewString(),
		Symbol:            tick.Symbol,
		Side:              types.TradeSideBuy,
		Price:             tick.Close,
		Volume:            volume,
		RealizedPnL:       0,
		BalanceAfter:      a.state.Balance,
		PositionSizeAfter: a.state.PositionSize,
		Timestamp:         now,
		Reason:            reason,
	}
	a.state.TradeHistory = append(a.state.TradeHistory, trade)

	a.logger.Info("Open long done",
		zap.Float64("balance_after", a.state.Balance),
		zap.Float64("position_size", a.state.PositionSize),
		zap.Float64("avg_entry", a.state.AvgEntryPrice),
	)

	return optional.Some(trade)
}

// CheckCloseConditions returns the reason the open position should be closed at tick.Close, if any.
// The grace period is checked first, then TIME_EXIT, then TAKE_PROFIT, then STOP_LOSS.
func (a *Account) CheckCloseConditions(tick types.MarketTick, now time.Time) optional.Option[types.CloseReason] {
	if a.state.PositionSide != types.PositionSideLong || a.state.PositionSize <= 0 {
		return optional.None[types.CloseReason]()
	}

	if a.state.PositionOpenTime.IsSome() {
		elapsed := now.Sub(a.state.PositionOpenTime.Unwrap())
		if elapsed < a.cfg.MinTimeInPosition() {
			return optional.None[types.CloseReason]()
		}

		if elapsed >= a.cfg.MaxTimeInPosition() {
			return optional.Some(types.CloseReasonTimeExit)
		}
	}

	if tick.Close >= a.takeProfitLevel() {
		return optional.Some(types.CloseReasonTakeProfit)
	}

	if tick.Close <= a.stopLossLevel() {
		return optional.Some(types.CloseReasonStopLoss)
	}

	return optional.None[types.CloseReason]()
}

// CloseLong sells the whole position at tick.Close. It is a no-op when flat.
func (a *Account) CloseLong(tick types.MarketTick, reason types.CloseReason, now time.Time) optional.Option[types.TradeEvent] {
	if a.state.PositionSide != types.PositionSideLong || a.state.PositionSize <= 0 {
		a.logger.Warn("Close long skipped: no long position",
			zap.String("side", string(a.state.PositionSide)),
			zap.Float64("size", a.state.PositionSize),
		)

		return optional.None[types.TradeEvent]()
	}

	volume := a.state.PositionSize
	notional := volume * tick.Close
	pnl := (tick.Close - a.state.AvgEntryPrice) * volume

	a.logger.Info("Close long",
		zap.String("symbol", tick.Symbol),
		zap.Float64("price", tick.Close),
		zap.Float64("volume", volume),
		zap.Float64("notional", notional),
		zap.Float64("pnl", pnl),
		zap.String("reason", string(reason)),
		zap.Float64("balance_before", a.state.Balance),
	)

	a.state.Balance += notional
	a.state.PositionSide = types.PositionSideNone
	a.state.PositionSize = 0
	a.state.AvgEntryPrice = 0
	a.state.PositionOpenTime = optional.None[time.Time]()
	a.state.TotalRealizedPnL += pnl

	trade := types.TradeEvent{
		ID:                uuid.NewString(),
		Symbol:            tick.Symbol,
		Side:              types.TradeSideSell,
		Price:             tick.Close,
		Volume:            volume,
		RealizedPnL:       pnl,
		BalanceAfter:      a.state.Balance,
		PositionSizeAfter: a.state.PositionSize,
		Timestamp:         now,
		Reason:            string(reason),
	}
	a.state.TradeHistory = append(a.state.TradeHistory, trade)

	a.logger.Info("Close long done",
		zap.Float64("balance_after", a.state.Balance),
		zap.Float64("realized_pnl", pnl),
	)

	return optional.Some(trade)
}

// Equity returns the balance plus the value of the open position at the last price.
func (a *Account) Equity() float64 {
	return a.state.Equity()
}

// UnrealizedPnL returns the paper P&L of the open position at the last price.
func (a *Account) UnrealizedPnL() float64 {
	if a.state.PositionSide != types.PositionSideLong || a.state.LastPrice.IsNone() {
		return 0
	}

	return (a.state.LastPrice.Unwrap() - a.state.AvgEntryPrice) * a.state.PositionSize
}

// Snapshot builds the client facing view of the account.
func (a *Account) Snapshot(now time.Time) types.AccountState {
	takeProfit := optional.None[float64]()
	stopLoss := optional.None[float64]()
	notional := optional.None[float64]()

	if a.state.PositionSide == types.PositionSideLong && a.state.PositionSize > 0 {
		notional = optional.Some(a.state.PositionSize * a.state.AvgEntryPrice)

		if a.cfg.TakeProfitPct > 0 {
			takeProfit = optional.Some(a.takeProfitLevel())
		}

		if a.cfg.StopLossPct > 0 {
			stopLoss = optional.Some(a.stopLossLevel())
		}
	}

	return types.AccountState{
		Balance:          a.state.Balance,
		Equity:           a.state.Equity(),
		PositionSide:     a.state.PositionSide,
		PositionSize:     a.state.PositionSize,
		AvgEntryPrice:    a.state.AvgEntryPrice,
		LastPrice:        a.state.LastPrice,
		UpdatedAt:        now,
		RealizedPnL:      a.state.TotalRealizedPnL,
		PositionOpenTime: a.state.PositionOpenTime,
		TakeProfitPrice:  takeProfit,
		StopLossPrice:    stopLoss,
		PositionNotional: notional,
	}
}

// CheckInvariant verifies that the position fields agree on whether the account is flat.
func (a *Account) CheckInvariant() error {
	flat := a.state.PositionSide == types.PositionSideNone

	var err *errors.InvariantError

	switch {
	case a.state.PositionSide != types.PositionSideNone && a.state.PositionSide != types.PositionSideLong:
		err = errors.NewInvariantError("position_side", "unknown side %q", a.state.PositionSide)
	case flat != (a.state.PositionSize == 0):
		err = errors.NewInvariantError("position_size", "side %s with size %v", a.state.PositionSide, a.state.PositionSize)
	case flat != (a.state.AvgEntryPrice == 0):
		err = errors.NewInvariantError("avg_entry_price", "side %s with entry %v", a.state.PositionSide, a.state.AvgEntryPrice)
	case flat != a.state.PositionOpenTime.IsNone():
		err = errors.NewInvariantError("position_open_time", "side %s with open time set=%t", a.state.PositionSide, a.state.PositionOpenTime.IsSome())
	case a.state.PositionSize < 0:
		err = errors.NewInvariantError("position_size", "negative size %v", a.state.PositionSize)
	}

	if err != nil {
		return errors.Wrap(errors.ErrCodeInvariantViolated, "account state is inconsistent", err)
	}

	return nil
}

func (a *Account) takeProfitLevel() float64 {
	return a.state.AvgEntryPrice * (1 + a.cfg.TakeProfitPct/100)
}

func (a *Account) stopLossLevel() float64 {
	return a.state.AvgEntryPrice * (1 - a.cfg.StopLossPct/100)
}
