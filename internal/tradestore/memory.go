package tradestore

import (
	"sync"

	"github.com/rxtech-lab/argo-paper-agent/internal/types"
)

// MemoryStore keeps trade events in a process-local slice.
type MemoryStore struct {
	trades []types.TradeEvent
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty in-memory trade sink.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trades: make([]types.TradeEvent, 0),
		mu:     sync.RWMutex{},
	}
}

// Save implements TradeSink.
func (s *MemoryStore) Save(trade types.TradeEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades = append(s.trades, trade)

	return nil
}

// ListAll implements TradeSink. The returned slice is a copy.
func (s *MemoryStore) ListAll() ([]types.TradeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trades := make([]types.TradeEvent, len(s.trades))
	copy(trades, s.trades)

	return trades, nil
}
