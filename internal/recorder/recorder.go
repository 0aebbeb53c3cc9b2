package recorder

import "time"

// SignalRecord holds one emitted breakout alert.
type SignalRecord struct {
	PassID        string
	Symbol        string
	Tier          string
	Close         float64
	RSI           float64
	Volume        float64
	QuoteVolume24 float64
	BaseRangePct  float64
	BodyPct       float64
}

// PassSummary holds the outcome of one full scan pass.
type PassSummary struct {
	PassID       string
	UniverseSize int
	Scanned      int
	Skipped      int
	Signals      int
	Duration     time.Duration
}

// Recorder persists scan history for later analysis.
type Recorder interface {
	RecordSignal(rec *SignalRecord) error
	RecordPass(sum *PassSummary) error
	Close() error
}
