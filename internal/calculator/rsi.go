package calculator

import (
	"errors"
	"math"
)

// RSISeries computes the RSI of closes using a simple moving average of the
// trailing gains and losses over the given period. Output is parallel to
// the input; the first `period` positions are NaN since they lack a full
// window of deltas. A zero average loss clamps the value to 100 instead of
// letting a non-finite ratio reach the comparisons downstream.
func RSISeries(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(closes) < period+1 {
		return out, nil
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period {
			continue
		}
		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)
		if avgLoss == 0 {
			out[i] = 100.0
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return out, nil
}
