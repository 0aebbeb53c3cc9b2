package calculator

import (
	"errors"
	"math"
)

// Indicator periods used by the scan pipeline.
const (
	MAFastPeriod   = 7
	MASlowPeriod   = 25
	VolumeMAPeriod = 20
	RSIPeriod      = 14
)

// MinWindow is the shortest candle window that yields a complete last row.
const MinWindow = MASlowPeriod

// SMASeries computes the trailing simple moving average of values over the
// given period. Output is parallel to the input; positions before the first
// full window are NaN.
func SMASeries(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}
