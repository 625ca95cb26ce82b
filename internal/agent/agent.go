package agent

import (
	"sync"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-paper-agent/internal/clock"
	"github.com/rxtech-lab/argo-paper-agent/internal/config"
	"github.com/rxtech-lab/argo-paper-agent/internal/logger"
	"github.com/rxtech-lab/argo-paper-agent/internal/risk"
	"github.com/rxtech-lab/argo-paper-agent/internal/stats"
	"github.com/rxtech-lab/argo-paper-agent/internal/strategy"
	"github.com/rxtech-lab/argo-paper-agent/internal/tradestore"
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
	"go.uber.org/zap"
)

// DecisionListener is called with every decision while the agent lock is held.
// Listeners must not block and must not call back into the agent.
type DecisionListener func(decision types.BotDecision)

// Agent is one paper trading agent. It serializes ticks, resets and reads.
type Agent struct {
	cfg       config.AgentConfig
	strategy  strategy.Strategy
	account   *Account
	sink      tradestore.TradeSink
	clock     clock.Clock
	stats     *stats.Tracker
	listeners []DecisionListener
	logger    *logger.Logger
	mu        sync.Mutex
}

// NewAgent creates an agent with a flat account holding cfg.InitialBalance.
func NewAgent(
	cfg config.AgentConfig,
	strat strategy.Strategy,
	sizer risk.PositionSizer,
	sink tradestore.TradeSink,
	clk clock.Clock,
	tracker *stats.Tracker,
	log *logger.Logger,
) *Agent {
	log.Info("Agent config",
		zap.Float64("initial_balance", cfg.InitialBalance),
		zap.Float64("risk_per_trade_pct", cfg.RiskPerTradePct),
		zap.Float64("take_profit_pct", cfg.TakeProfitPct),
		zap.Float64("stop_loss_pct", cfg.StopLossPct),
		zap.Float64("max_position_pct_of_balance", cfg.MaxPositionPctOfBalance),
		zap.Int("min_time_in_position_seconds", cfg.MinTimeInPositionSeconds),
		zap.Int("max_time_in_position_seconds", cfg.MaxTimeInPositionSeconds),
		zap.String("strategy", strat.Name()),
		zap.String("spike_reference", string(cfg.SpikeReference)),
	)

	return &Agent{
		cfg:       cfg,
		strategy:  strat,
		account:   NewAccount(cfg, sizer, log),
		sink:      sink,
		clock:     clk,
		stats:     tracker,
		listeners: nil,
		logger:    log,
		mu:        sync.Mutex{},
	}
}

// AddListener registers a listener for every future decision.
func (a *Agent) AddListener(listener DecisionListener) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.listeners = append(a.listeners, listener)
}

// StrategyName returns the name of the strategy in use.
func (a *Agent) StrategyName() string {
	return a.strategy.Name()
}

// ProcessTick runs one tick through the strategy and the account.
// Declined entries and exits are not errors. An error is returned when the trade sink
// rejects a fill or the account ends up inconsistent; the decision is still returned.
func (a *Agent) ProcessTick(tick types.MarketTick) (types.BotDecision, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	before := a.account.State()

	a.logger.Info("Tick in",
		zap.String("symbol", tick.Symbol),
		zap.Time("ts", tick.Timestamp),
		zap.Float64("open", tick.Open),
		zap.Float64("high", tick.High),
		zap.Float64("low", tick.Low),
		zap.Float64("close", tick.Close),
		zap.Float64("volume", tick.Volume),
		zap.Float64("balance", before.Balance),
		zap.Float64("equity", before.Equity()),
		zap.String("side", string(before.PositionSide)),
		zap.Float64("size", before.PositionSize),
		zap.Float64("avg_entry", before.AvgEntryPrice),
		zap.Any("last_price", before.LastPrice),
	)

	previousPrice := before.LastPrice
	a.account.ObservePrice(tick.Close, now)

	reference := a.referencePrice(previousPrice)
	signal := a.strategy.GenerateSignal(strategy.SignalContext{
		State:          a.account.State(),
		Tick:           tick,
		ReferencePrice: reference,
		Now:            now,
	})

	debug := types.DecisionDebug{
		StrategyName:   a.strategy.Name(),
		StrategyAction: signal.Action,
		StrategyReason: signal.Reason,
		ReferencePrice: reference.TakeOr(0),
		EnteredLong:    false,
		CloseReason:    "",
		Equity:         0,
		RoiPct:         0,
	}

	trades := make([]types.TradeEvent, 0, 1)

	if a.account.State().IsFlat() {
		if signal.Action == types.SignalActionOpenLong {
			if trade := a.account.OpenLong(tick, signal.Reason, now); trade.IsSome() {
				trades = append(trades, trade.Unwrap())
				debug.EnteredLong = true
			}
		}
	} else if reason := a.account.CheckCloseConditions(tick, now); reason.IsSome() {
		if trade := a.account.CloseLong(tick, reason.Unwrap(), now); trade.IsSome() {
			trades = append(trades, trade.Unwrap())
			debug.CloseReason = reason.Unwrap()
		}
	}

	var tickErr error

	for _, trade := range trades {
		a.stats.RecordTrade(trade)

		if err := a.sink.Save(trade); err != nil {
			a.logger.Error("Failed to save trade", zap.String("trade_id", trade.ID), zap.Error(err))
			tickErr = errors.Wrapf(errors.ErrCodeTradeSinkFailed, err, "failed to save trade %s", trade.ID)
		}
	}

	account := a.account.Snapshot(now)
	debug.Equity = account.Equity
	debug.RoiPct = a.roiPct(account.Equity)
	a.stats.UpdateAccount(account.Equity, a.account.UnrealizedPnL())

	if err := a.account.CheckInvariant(); err != nil {
		a.logger.Error("Account invariant violated", zap.Error(err))
		tickErr = err
	}

	a.logger.Info("Tick out",
		zap.String("symbol", tick.Symbol),
		zap.Float64("close", tick.Close),
		zap.Float64("balance", account.Balance),
		zap.Float64("equity", account.Equity),
		zap.String("side", string(account.PositionSide)),
		zap.Float64("size", account.PositionSize),
		zap.Float64("avg_entry", account.AvgEntryPrice),
		zap.String("action", string(signal.Action)),
		zap.String("reason", signal.Reason),
		zap.Int("trades", len(trades)),
	)

	a.logger.Info("ROI check",
		zap.Float64("initial_balance", a.cfg.InitialBalance),
		zap.Float64("equity", account.Equity),
		zap.Float64("diff", account.Equity-a.cfg.InitialBalance),
		zap.Float64("pct", debug.RoiPct),
	)

	decision := types.BotDecision{
		Trades:  trades,
		Account: account,
		Debug:   debug,
	}

	for _, listener := range a.listeners {
		listener(decision)
	}

	return decision, tickErr
}

// State returns the current account snapshot.
func (a *Agent) State() types.AccountState {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.account.Snapshot(a.clock.Now())
}

// Trades returns every trade recorded by the trade sink, including those from before a reset.
func (a *Agent) Trades() ([]types.TradeEvent, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	trades, err := a.sink.ListAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to list trades", err)
	}

	return trades, nil
}

// Stats returns the round trip statistics since the last reset.
func (a *Agent) Stats() types.TradeStats {
	return a.stats.GetStats()
}

// Reset replaces the account with a fresh one holding the initial balance.
// The trade sink is left untouched.
func (a *Agent) Reset() types.AccountState {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.account.Reset()
	a.stats.Reset()

	a.logger.Info("Agent reset", zap.Float64("initial_balance", a.cfg.InitialBalance))

	return a.account.Snapshot(a.clock.Now())
}

// referencePrice picks the price the entry rules compare against.
func (a *Agent) referencePrice(previous optional.Option[float64]) optional.Option[float64] {
	if a.cfg.SpikeReference == config.SpikeReferencePrevious {
		return previous
	}

	return a.account.State().LastPrice
}

func (a *Agent) roiPct(equity float64) float64 {
	if a.cfg.InitialBalance <= 0 {
		return 0
	}

	return (equity - a.cfg.InitialBalance) / a.cfg.InitialBalance * 100
}
