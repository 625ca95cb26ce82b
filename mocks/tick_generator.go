package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/shopspring/decimal"
)

// TickGenerator produces seeded random-walk tick streams for agent tests.
type TickGenerator struct {
	rng *rand.Rand
}

// NewTickGenerator creates a generator. The same seed always yields the same stream.
func NewTickGenerator(seed int64) *TickGenerator {
	return &TickGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// TickStreamConfig shapes a generated stream.
type TickStreamConfig struct {
	Symbol    string
	StartTime time.Time
	// Interval between consecutive tick timestamps
	Interval time.Duration
	Count    int
	// StartPrice is the open of the first tick
	StartPrice float64
	// Volatility is the standard deviation of the per-tick return
	Volatility float64
	// JumpProbability is the chance that a tick adds a jump of JumpPct percent, up or down with equal odds
	JumpProbability float64
	JumpPct         float64
	// MeanVolume is the average tick volume; volumes are spread uniformly by VolumeSpread around it
	MeanVolume   float64
	VolumeSpread float64
}

// DefaultTickStreamConfig returns one-second BTCUSDT ticks around 100 with occasional 0.5% jumps
// and volumes that sometimes fall below the entry minimum.
func DefaultTickStreamConfig() TickStreamConfig {
	return TickStreamConfig{
		Symbol:          "BTCUSDT",
		StartTime:       time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Interval:        time.Second,
		Count:           1000,
		StartPrice:      100.0,
		Volatility:      0.002,
		JumpProbability: 0.02,
		JumpPct:         0.5,
		MeanVolume:      5,
		VolumeSpread:    0.9,
	}
}

// Generate returns cfg.Count ticks. Each close becomes the next open.
func (g *TickGenerator) Generate(cfg TickStreamConfig) []types.MarketTick {
	ticks := make([]types.MarketTick, 0, cfg.Count)
	price := cfg.StartPrice
	at := cfg.StartTime

	for i := 0; i < cfg.Count; i++ {
		ret := cfg.Volatility * g.rng.NormFloat64()
		if g.rng.Float64() < cfg.JumpProbability {
			jump := cfg.JumpPct / 100
			if g.rng.Intn(2) == 0 {
				jump = -jump
			}

			ret += jump
		}

		open := price
		closePrice := open * (1 + ret)
		if closePrice <= 0 {
			closePrice = open / 2
		}

		wick := cfg.Volatility * open * 0.5
		high := math.Max(open, closePrice) + g.rng.Float64()*wick
		low := math.Max(math.Min(open, closePrice)-g.rng.Float64()*wick, math.Min(open, closePrice)/2)

		volume := cfg.MeanVolume * (1 + (2*g.rng.Float64()-1)*cfg.VolumeSpread)

		ticks = append(ticks, types.MarketTick{
			Symbol:    cfg.Symbol,
			Timestamp: at,
			Open:      round(open, 4),
			High:      round(high, 4),
			Low:       round(low, 4),
			Close:     round(closePrice, 4),
			Volume:    math.Max(round(volume, 2), 0),
		})

		price = closePrice
		at = at.Add(cfg.Interval)
	}

	return ticks
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
