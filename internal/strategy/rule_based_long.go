package strategy

import (
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
)

// RuleBasedLongName is the registry name of RuleBasedLong.
const RuleBasedLongName = "rule_based_long"

const (
	// spikeUpFactor rejects entries after a single tick jump of more than 0.3%.
	spikeUpFactor = 1.003
	// minEntryVolume is the smallest tick volume accepted for an entry.
	minEntryVolume = 1.0
)

// RuleBasedLong opens a long on any quiet tick with enough volume.
type RuleBasedLong struct{}

// NewRuleBasedLong creates the rule based long strategy.
func NewRuleBasedLong() Strategy {
	return &RuleBasedLong{}
}

// Name implements Strategy.
func (s *RuleBasedLong) Name() string {
	return RuleBasedLongName
}

// GenerateSignal implements Strategy.
func (s *RuleBasedLong) GenerateSignal(ctx SignalContext) types.StrategySignal {
	if !ctx.State.IsFlat() {
		return holdWhileLong(ctx)
	}

	if ctx.ReferencePrice.IsNone() {
		return types.Hold(types.ReasonNoReferencePrice)
	}

	if ctx.Tick.Close > ctx.ReferencePrice.Unwrap()*spikeUpFactor {
		return types.Hold(types.ReasonPriceSpikeUp)
	}

	if ctx.Tick.Volume < minEntryVolume {
		return types.Hold(types.ReasonLowVolume)
	}

	return types.OpenLong(types.ReasonEntryConditionsMet)
}
