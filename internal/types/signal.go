package types

// SignalAction is the action a strategy asks the agent to take.
type SignalAction string

const (
	// SignalActionHold tells the agent to do nothing on this tick.
	SignalActionHold SignalAction = "HOLD"
	// SignalActionOpenLong tells the agent to open a long position when flat.
	SignalActionOpenLong SignalAction = "OPEN_LONG"
)

// Entry-side reason codes produced by strategies.
const (
	ReasonNoReferencePrice   = "NO_REFERENCE_PRICE"
	ReasonPriceSpikeUp       = "PRICE_SPIKE_UP"
	ReasonLowVolume          = "LOW_VOLUME"
	ReasonEntryConditionsMet = "ENTRY_CONDITIONS_MET"
	ReasonNoDip              = "NO_DIP"
	ReasonDipEntry           = "DIP_ENTRY"
	ReasonTooEarlyToClose    = "TOO_EARLY_TO_CLOSE"
	ReasonNoCloseCondition   = "NO_CLOSE_CONDITION"
)

// StrategySignal is the transient output of a strategy for one tick.
type StrategySignal struct {
	// Action is what the strategy wants to do
	Action SignalAction `json:"action"`
	// Reason is a free-text code explaining the action
	Reason string `json:"reason"`
}

// Hold returns a HOLD signal with the given reason.
func Hold(reason string) StrategySignal {
	return StrategySignal{Action: SignalActionHold, Reason: reason}
}

// OpenLong returns an OPEN_LONG signal with the given reason.
func OpenLong(reason string) StrategySignal {
	return StrategySignal{Action: SignalActionOpenLong, Reason: reason}
}
