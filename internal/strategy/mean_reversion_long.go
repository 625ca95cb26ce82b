package strategy

import (
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
)

// MeanReversionLongName is the registry name of MeanReversionLong.
const MeanReversionLongName = "mean_reversion_long"

// MeanReversionLong buys a dip of at least dipPct percent below the reference price.
type MeanReversionLong struct {
	dipPct float64
}

// NewMeanReversionLong creates the mean reversion strategy.
func NewMeanReversionLong(dipPct float64) Strategy {
	return &MeanReversionLong{dipPct: dipPct}
}

// Name implements Strategy.
func (s *MeanReversionLong) Name() string {
	return MeanReversionLongName
}

// GenerateSignal implements Strategy.
func (s *MeanReversionLong) GenerateSignal(ctx SignalContext) types.StrategySignal {
	if !ctx.State.IsFlat() {
		return holdWhileLong(ctx)
	}

	if ctx.ReferencePrice.IsNone() {
		return types.Hold(types.ReasonNoReferencePrice)
	}

	threshold := ctx.ReferencePrice.Unwrap() * (1 - s.dipPct/100)
	if ctx.Tick.Close > threshold {
		return types.Hold(types.ReasonNoDip)
	}

	if ctx.Tick.Volume < minEntryVolume {
		return types.Hold(types.ReasonLowVolume)
	}

	return types.OpenLong(types.ReasonDipEntry)
}
