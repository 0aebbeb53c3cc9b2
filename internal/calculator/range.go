package calculator

import (
	"errors"
	"math"

	"BreakoutSentinel/internal/model"
)

// BaseRange returns the high-low extremes of the lookback candles
// immediately preceding the last one. The last candle is the signal candle
// and is excluded from its own consolidation base.
func BaseRange(candles []model.Candle, lookback int) (high, low float64, err error) {
	if lookback <= 0 {
		return 0, 0, errors.New("lookback must be positive")
	}
	if len(candles) < lookback+1 {
		return 0, 0, errors.New("not enough candles for base range")
	}
	start := len(candles) - 1 - lookback
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, c := range candles[start : len(candles)-1] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low, nil
}
