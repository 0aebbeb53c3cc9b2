package model

// SignalTier labels the strength of a breakout.
type SignalTier string

const (
	TierNormal SignalTier = "NORMAL"
	TierStrong SignalTier = "STRONG"
)

// BreakoutSignal is the final output of the classifier for one symbol.
// It lives for a single classification call and is never persisted as-is.
type BreakoutSignal struct {
	Symbol       string
	Tier         SignalTier
	Close        float64
	RSI          float64
	Volume       float64
	BaseRangePct float64
	BodyPct      float64
}
