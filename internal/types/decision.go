package types

// DecisionDebug carries per-tick diagnostics.
type DecisionDebug struct {
	StrategyName   string       `json:"strategy_name"`
	StrategyAction SignalAction `json:"strategy_action"`
	StrategyReason string       `json:"strategy_reason"`
	// ReferencePrice is the last price the strategy compared the tick against, 0 when there was none.
	ReferencePrice float64     `json:"reference_price"`
	EnteredLong    bool        `json:"entered_long,omitempty"`
	CloseReason    CloseReason `json:"close_reason,omitempty"`
	Equity         float64     `json:"equity"`
	RoiPct         float64     `json:"roi_pct"`
}

// BotDecision is the result of processing one tick.
type BotDecision struct {
	// Trades holds zero or one fill; a tick never both opens and closes.
	Trades  []TradeEvent  `json:"trades"`
	Account AccountState  `json:"account"`
	Debug   DecisionDebug `json:"debug"`
}
