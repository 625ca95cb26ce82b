// Package tradestore holds the append-only sinks trade events are persisted to.
package tradestore

import (
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
)

// TradeSink is an append-only log of trade events.
// Implementations must return events from ListAll in the order they were saved.
type TradeSink interface {
	// Save appends a trade event.
	Save(trade types.TradeEvent) error
	// ListAll returns every trade event ever saved.
	ListAll() ([]types.TradeEvent, error)
}
