package model

import "math"

// IndicatorRow holds the computed indicators for one candle position.
// A field is NaN while the window behind it is still shorter than the
// indicator's period.
type IndicatorRow struct {
	MAFast   float64 // SMA(7) of close
	MASlow   float64 // SMA(25) of close
	VolumeMA float64 // SMA(20) of volume
	RSI      float64 // RSI(14)
}

// Complete reports whether every indicator in the row is defined.
func (r IndicatorRow) Complete() bool {
	return !math.IsNaN(r.MAFast) && !math.IsNaN(r.MASlow) &&
		!math.IsNaN(r.VolumeMA) && !math.IsNaN(r.RSI)
}
