package feed

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-paper-agent/internal/logger"
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/rxtech-lab/argo-paper-agent/internal/version"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
	"go.uber.org/zap"
)

// ProgressFunc is called after every tick the agent accepted.
type ProgressFunc func(done, total int, decision types.BotDecision)

// ReplayResult summarizes one replay run.
type ReplayResult struct {
	Ticks  int
	Trades int
	Final  types.AccountState
}

// Replayer posts the ticks of a source to an agent one at a time, waiting for each decision.
//
// The agent times holding periods with its own clock, so ticks sent back to back all land inside
// the grace period. Pacing spaces the requests out: by default the gap between two ticks is their
// timestamp difference divided by the speed factor; a fixed interval overrides that.
type Replayer struct {
	client   *AgentClient
	logger   *logger.Logger
	progress ProgressFunc
	speed    float64
	interval time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// ReplayOption customizes a Replayer.
type ReplayOption func(*Replayer)

// WithSpeed replays ticks speed times faster than their timestamps. Zero or less disables pacing.
func WithSpeed(speed float64) ReplayOption {
	return func(r *Replayer) {
		r.speed = speed
	}
}

// WithFixedInterval waits d between ticks regardless of their timestamps.
func WithFixedInterval(d time.Duration) ReplayOption {
	return func(r *Replayer) {
		r.interval = d
	}
}

// NewReplayer creates a replayer. progress may be nil. Without options ticks are sent back to back.
func NewReplayer(client *AgentClient, log *logger.Logger, progress ProgressFunc, opts ...ReplayOption) *Replayer {
	r := &Replayer{
		client:   client,
		logger:   log,
		progress: progress,
		speed:    0,
		interval: 0,
		sleep:    sleepContext,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// delay returns how long to wait before sending next, given the previously sent tick.
func (r *Replayer) delay(prev, next types.MarketTick) time.Duration {
	if r.interval > 0 {
		return r.interval
	}

	if r.speed <= 0 {
		return 0
	}

	gap := next.Timestamp.Sub(prev.Timestamp)
	if gap <= 0 {
		return 0
	}

	return time.Duration(float64(gap) / r.speed)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CheckAgent verifies the agent is healthy and speaks a compatible version.
func (r *Replayer) CheckAgent(ctx context.Context) (types.HealthResponse, error) {
	health, err := r.client.Health(ctx)
	if err != nil {
		return health, err
	}

	if err := version.CheckCompatibility(health.Version, version.GetVersion()); err != nil {
		return health, err
	}

	return health, nil
}

// Run loads every tick from source and sends them in order. It stops at the first failed tick.
func (r *Replayer) Run(ctx context.Context, source Source) (ReplayResult, error) {
	var result ReplayResult

	health, err := r.CheckAgent(ctx)
	if err != nil {
		return result, err
	}

	ticks, err := source.Load(ctx)
	if err != nil {
		return result, err
	}

	r.logger.Info("Replaying ticks",
		zap.String("source", source.Name()),
		zap.Int("count", len(ticks)),
		zap.String("strategy", health.Strategy),
		zap.Float64("speed", r.speed),
		zap.Duration("interval", r.interval),
	)

	for i, tick := range ticks {
		if i > 0 {
			if d := r.delay(ticks[i-1], tick); d > 0 {
				if err := r.sleep(ctx, d); err != nil {
					return result, errors.Wrap(errors.ErrCodeFeedRequestFailed, "replay cancelled", err)
				}
			}
		}

		if err := ctx.Err(); err != nil {
			return result, errors.Wrap(errors.ErrCodeFeedRequestFailed, "replay cancelled", err)
		}

		decision, err := r.client.SendTick(ctx, tick)
		if err != nil {
			return result, errors.Wrapf(errors.ErrCodeFeedRequestFailed, err, "tick %d at %s rejected", i, tick.Timestamp)
		}

		result.Ticks++
		result.Trades += len(decision.Trades)
		result.Final = decision.Account

		if r.progress != nil {
			r.progress(i+1, len(ticks), decision)
		}
	}

	r.logger.Info("Replay done",
		zap.Int("ticks", result.Ticks),
		zap.Int("trades", result.Trades),
		zap.Float64("equity", result.Final.Equity),
	)

	return result, nil
}
