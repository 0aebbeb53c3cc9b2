package strategy

import "BreakoutSentinel/internal/model"

// Thresholds of the breakout rule.
const (
	// MinQuoteVolume24h is the liquidity floor: anything thinner is never
	// worth alerting on, regardless of the chart.
	MinQuoteVolume24h = 500_000.0

	rsiCrossLevel   = 60.0
	rsiOverbought   = 70.0
	volumeSurge     = 1.5
	maxBaseRangePct = 5.0
	strongBodyPct   = 1.2
	bodyDominance   = 0.25
)

// BaseLookback is how many candles before the signal candle form the
// consolidation base.
const BaseLookback = 5

// Snapshot carries the inputs of one classification: the last two indicator
// rows, the signal candle, the base extremes over the five candles
// preceding it, and the independently fetched 24h quote volume.
type Snapshot struct {
	Symbol        string
	Prev          model.IndicatorRow
	Last          model.IndicatorRow
	LastCandle    model.Candle
	BaseHigh      float64
	BaseLow       float64
	QuoteVolume24 float64
}

// Classify applies the breakout rule to a snapshot. It returns nil when no
// signal fires. Pure function: the caller owns the dedup gate and emission.
//
// A breakout requires all of: the RSI crossing up through 60 without yet
// reaching 70, a volume surge over the 20-candle average, fast MA above
// slow MA, and a consolidation base tighter than 5%. The STRONG tier
// additionally requires a candle body above 1.2% that dominates the
// candle's total range.
func Classify(s Snapshot) *model.BreakoutSignal {
	if s.QuoteVolume24 < MinQuoteVolume24h {
		return nil
	}
	if !s.Prev.Complete() || !s.Last.Complete() {
		return nil
	}
	c := s.LastCandle
	if s.BaseLow <= 0 || c.Open <= 0 {
		return nil
	}

	baseRangePct := (s.BaseHigh - s.BaseLow) / s.BaseLow * 100
	bodyPct := (c.Close - c.Open) / c.Open * 100
	bodyVsWick := (c.Close - c.Open) > bodyDominance*(c.High-c.Low)

	valid := s.Prev.RSI <= rsiCrossLevel &&
		s.Last.RSI > rsiCrossLevel && s.Last.RSI < rsiOverbought &&
		c.Volume > volumeSurge*s.Last.VolumeMA &&
		s.Last.MAFast > s.Last.MASlow &&
		baseRangePct < maxBaseRangePct
	if !valid {
		return nil
	}

	tier := model.TierNormal
	if bodyPct > strongBodyPct && bodyVsWick {
		tier = model.TierStrong
	}

	return &model.BreakoutSignal{
		Symbol:       s.Symbol,
		Tier:         tier,
		Close:        c.Close,
		RSI:          s.Last.RSI,
		Volume:       c.Volume,
		BaseRangePct: baseRangePct,
		BodyPct:      bodyPct,
	}
}
