package feed

import (
	"context"

	"github.com/rxtech-lab/argo-paper-agent/internal/types"
)

// Source produces market ticks in chronological order.
type Source interface {
	// Name describes the source for logs and progress output.
	Name() string
	// Load returns every tick the source holds, oldest first.
	Load(ctx context.Context) ([]types.MarketTick, error)
}
