package risk

import (
	"math"

	"github.com/rxtech-lab/argo-paper-agent/internal/config"
	"github.com/shopspring/decimal"
)

// PositionSizer decides how many units to buy for a new long position.
type PositionSizer interface {
	// Size returns the volume to buy at price given the current balance.
	// A zero result means no position should be opened.
	Size(balance float64, price float64) float64
}

// RiskSizer sizes positions from the configured risk budget and the maximum position share.
type RiskSizer struct {
	riskPerTradePct         float64
	stopLossPct             float64
	maxPositionPctOfBalance float64
}

// volumeDecimals is the precision of position sizes.
const volumeDecimals = 4

// NewRiskSizer creates a sizer reading the risk settings from cfg.
func NewRiskSizer(cfg config.AgentConfig) *RiskSizer {
	return &RiskSizer{
		riskPerTradePct:         cfg.RiskPerTradePct,
		stopLossPct:             cfg.StopLossPct,
		maxPositionPctOfBalance: cfg.MaxPositionPctOfBalance,
	}
}

// Size returns min(risk bound, cap bound) rounded to 4 decimals, half away from zero.
// Risk bound is the volume whose loss at the stop equals risk_per_trade_pct of the balance.
// Cap bound is the volume whose notional equals max_position_pct_of_balance of the balance.
// Without a stop distance there is no risk bound and nothing is bought.
func (s *RiskSizer) Size(balance float64, price float64) float64 {
	if price <= 0 {
		return 0
	}

	riskAmount := balance * (s.riskPerTradePct / 100)

	stopDistance := price * (s.stopLossPct / 100)
	if stopDistance <= 0 {
		return 0
	}

	riskVolume := riskAmount / stopDistance

	maxNotional := balance * (s.maxPositionPctOfBalance / 100)
	capVolume := maxNotional / price

	volume := math.Min(riskVolume, capVolume)
	if math.IsInf(volume, 0) || math.IsNaN(volume) || volume <= 0 {
		return 0
	}

	rounded, _ := decimal.NewFromFloat(volume).Round(volumeDecimals).Float64()

	return rounded
}
