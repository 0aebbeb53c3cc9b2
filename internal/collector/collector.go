package collector

import (
	"context"
	"fmt"
	"log"
	"math"

	"BreakoutSentinel/internal/calculator"
	"BreakoutSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	SymbolList   []string
	SymbolsErr   error
	Candles      map[string][]model.Candle
	CandleErr    map[string]error
	QuoteVolumes map[string]float64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSymbols(_ context.Context) ([]string, error) {
	if m.SymbolsErr != nil {
		return nil, m.SymbolsErr
	}
	return m.SymbolList, nil
}

func (m *MockFetcher) FetchKlines(_ context.Context, symbol, _ string, _ int) ([]model.Candle, error) {
	if err := m.CandleErr[symbol]; err != nil {
		return nil, err
	}
	return m.Candles[symbol], nil
}

func (m *MockFetcher) FetchQuoteVolume24h(_ context.Context, symbol string) (float64, error) {
	return m.QuoteVolumes[symbol], nil
}

// MarketView is the per-symbol bundle handed to the classifier: the raw
// candle window, the indicator rows parallel to it, and the independently
// fetched 24h quote volume.
type MarketView struct {
	Symbol        string
	Candles       []model.Candle
	Rows          []model.IndicatorRow
	QuoteVolume24 float64
}

// Collector orchestrates per-symbol data fetching and indicator computation.
type Collector struct {
	Fetcher  Fetcher
	Interval string
	Limit    int
}

// NewCollector creates a Collector fetching windows of `limit` candles at
// the given kline interval.
func NewCollector(fetcher Fetcher, interval string, limit int) *Collector {
	return &Collector{Fetcher: fetcher, Interval: interval, Limit: limit}
}

// Symbols resolves the current tradable universe. Upstream failure is
// recoverable: it is logged and yields an empty universe, which simply ends
// the pass early.
func (c *Collector) Symbols(ctx context.Context) []string {
	symbols, err := c.Fetcher.FetchSymbols(ctx)
	if err != nil {
		log.Printf("[WARN] resolve universe: %v", err)
		return nil
	}
	return symbols
}

// Collect fetches one symbol's candle window and 24h volume and computes
// the indicator rows. It guarantees that the last two rows are complete;
// windows too short or malformed for that map to ErrInsufficientData.
func (c *Collector) Collect(ctx context.Context, symbol string) (*MarketView, error) {
	candles, err := c.Fetcher.FetchKlines(ctx, symbol, c.Interval, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("fetch klines: %w", err)
	}
	if len(candles) < calculator.MinWindow {
		return nil, fmt.Errorf("%d candles for %s: %w", len(candles), symbol, ErrInsufficientData)
	}
	for _, cd := range candles {
		if !finiteCandle(cd) {
			return nil, fmt.Errorf("non-finite candle for %s: %w", symbol, ErrInsufficientData)
		}
	}

	closes := make([]float64, len(candles))
	volumes := make([]float64, len(candles))
	for i, cd := range candles {
		closes[i] = cd.Close
		volumes[i] = cd.Volume
	}

	maFast, err := calculator.SMASeries(closes, calculator.MAFastPeriod)
	if err != nil {
		return nil, fmt.Errorf("ma fast: %w", err)
	}
	maSlow, err := calculator.SMASeries(closes, calculator.MASlowPeriod)
	if err != nil {
		return nil, fmt.Errorf("ma slow: %w", err)
	}
	volumeMA, err := calculator.SMASeries(volumes, calculator.VolumeMAPeriod)
	if err != nil {
		return nil, fmt.Errorf("volume ma: %w", err)
	}
	rsi, err := calculator.RSISeries(closes, calculator.RSIPeriod)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}

	rows := make([]model.IndicatorRow, len(candles))
	for i := range rows {
		rows[i] = model.IndicatorRow{
			MAFast:   maFast[i],
			MASlow:   maSlow[i],
			VolumeMA: volumeMA[i],
			RSI:      rsi[i],
		}
	}
	if !rows[len(rows)-1].Complete() || !rows[len(rows)-2].Complete() {
		return nil, fmt.Errorf("incomplete indicator rows for %s: %w", symbol, ErrInsufficientData)
	}

	quoteVolume, err := c.Fetcher.FetchQuoteVolume24h(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch 24h volume: %w", err)
	}

	return &MarketView{
		Symbol:        symbol,
		Candles:       candles,
		Rows:          rows,
		QuoteVolume24: quoteVolume,
	}, nil
}

func finiteCandle(c model.Candle) bool {
	for _, v := range []float64{c.Open, c.High, c.Low, c.Close, c.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
