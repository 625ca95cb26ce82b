package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
)

// MarketTick is one OHLCV observation for a symbol. It is transient input and never stored.
type MarketTick struct {
	Symbol    string    `json:"symbol" yaml:"symbol" csv:"symbol" validate:"required"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp" csv:"timestamp" validate:"required"`
	Open      float64   `json:"open" yaml:"open" csv:"open" validate:"gte=0"`
	High      float64   `json:"high" yaml:"high" csv:"high" validate:"gte=0"`
	Low       float64   `json:"low" yaml:"low" csv:"low" validate:"gte=0"`
	Close     float64   `json:"close" yaml:"close" csv:"close" validate:"gte=0"`
	Volume    float64   `json:"volume" yaml:"volume" csv:"volume" validate:"gte=0"`
}

// Validate validates the MarketTick struct.
func (t *MarketTick) Validate() error {
	validate := validator.New()
	if err := validate.Struct(t); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTick, "invalid market tick", err)
	}

	return nil
}
