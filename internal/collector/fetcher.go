package collector

import (
	"context"
	"errors"

	"BreakoutSentinel/internal/model"
)

// ErrInsufficientData marks a symbol whose market data is too short or
// malformed for indicator computation. The symbol is skipped for the
// current pass without further noise.
var ErrInsufficientData = errors.New("insufficient market data")

// Fetcher defines the exchange data access used by the scan pipeline.
type Fetcher interface {
	FetchKlines(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error)
	FetchQuoteVolume24h(ctx context.Context, symbol string) (float64, error)
	FetchSymbols(ctx context.Context) ([]string, error)
	Name() string
}
