package strategy

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
)

// SignalContext is everything a strategy may look at for one tick.
// Strategies must treat it as read-only.
type SignalContext struct {
	// State is the account as seen by the strategy
	State types.AgentState
	// Tick is the tick being processed
	Tick types.MarketTick
	// ReferencePrice is the price the entry rules compare the tick against
	ReferencePrice optional.Option[float64]
	// Now is the agent clock reading for this tick
	Now time.Time
}

// Strategy turns a tick into a trading signal.
// Strategies only decide on entries; exits are decided by the account.
type Strategy interface {
	// Name returns the registry name of the strategy.
	Name() string
	// GenerateSignal returns the signal for the tick in ctx.
	GenerateSignal(ctx SignalContext) types.StrategySignal
}

// minHoldBeforeCloseSignal is the hold time strategies wait before reporting on a close.
const minHoldBeforeCloseSignal = time.Second

// holdWhileLong is the close side shared by the long-only strategies.
// It never asks for a close; it only reports whether the position is still too young.
func holdWhileLong(ctx SignalContext) types.StrategySignal {
	if ctx.State.PositionOpenTime.IsSome() {
		if ctx.Now.Sub(ctx.State.PositionOpenTime.Unwrap()) < minHoldBeforeCloseSignal {
			return types.Hold(types.ReasonTooEarlyToClose)
		}
	}

	return types.Hold(types.ReasonNoCloseCondition)
}
