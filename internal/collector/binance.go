package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"BreakoutSentinel/internal/model"
)

// BinanceFetcher implements Fetcher against the Binance spot REST API.
type BinanceFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewBinanceFetcher creates a fetcher for the given API base URL.
// An empty base URL selects the public production endpoint.
func NewBinanceFetcher(baseURL string) *BinanceFetcher {
	if baseURL == "" {
		baseURL = "https://api.binance.com"
	}
	return &BinanceFetcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// FetchKlines returns the most recent candles, oldest first. Binance encodes
// klines as an array of arrays with string-typed prices; anything that does
// not decode to that shape maps to ErrInsufficientData.
func (f *BinanceFetcher) FetchKlines(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error) {
	endpoint := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(interval), limit)
	body, err := f.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var rows [][]interface{}
	if err := json.Unmarshal(body, &rows); err != nil {
		// Error responses come back as a JSON object, not a list.
		return nil, fmt.Errorf("klines %s: non-list payload: %w", symbol, ErrInsufficientData)
	}
	candles := make([]model.Candle, 0, len(rows))
	for _, row := range rows {
		c, err := parseKline(row)
		if err != nil {
			return nil, fmt.Errorf("klines %s: %v: %w", symbol, err, ErrInsufficientData)
		}
		candles = append(candles, c)
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].OpenTime.Before(candles[j].OpenTime) })
	return candles, nil
}

// parseKline decodes one raw kline row:
// [openTime, open, high, low, close, volume, closeTime, ...].
func parseKline(row []interface{}) (model.Candle, error) {
	if len(row) < 6 {
		return model.Candle{}, fmt.Errorf("kline row has %d fields", len(row))
	}
	ts, ok := row[0].(float64)
	if !ok {
		return model.Candle{}, fmt.Errorf("open time is %T", row[0])
	}
	vals := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		s, ok := row[i].(string)
		if !ok {
			return model.Candle{}, fmt.Errorf("field %d is %T", i, row[i])
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.Candle{}, fmt.Errorf("field %d: %v", i, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return model.Candle{}, fmt.Errorf("field %d is not finite", i)
		}
		vals[i-1] = v
	}
	return model.Candle{
		OpenTime: time.UnixMilli(int64(ts)),
		Open:     vals[0],
		High:     vals[1],
		Low:      vals[2],
		Close:    vals[3],
		Volume:   vals[4],
	}, nil
}

// FetchQuoteVolume24h returns the rolling 24h quote asset volume for a symbol.
func (f *BinanceFetcher) FetchQuoteVolume24h(ctx context.Context, symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/api/v3/ticker/24hr?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	body, err := f.get(ctx, endpoint)
	if err != nil {
		return 0, err
	}
	var ticker struct {
		QuoteVolume string `json:"quoteVolume"`
	}
	if err := json.Unmarshal(body, &ticker); err != nil {
		return 0, fmt.Errorf("ticker %s: decode: %w", symbol, err)
	}
	v, err := strconv.ParseFloat(ticker.QuoteVolume, 64)
	if err != nil {
		return 0, fmt.Errorf("ticker %s: quote volume %q: %w", symbol, ticker.QuoteVolume, err)
	}
	return v, nil
}

// FetchSymbols returns the tradable universe: USDT-quoted spot pairs that
// are currently in TRADING status, in exchange order.
func (f *BinanceFetcher) FetchSymbols(ctx context.Context) ([]string, error) {
	body, err := f.get(ctx, f.BaseURL+"/api/v3/exchangeInfo")
	if err != nil {
		return nil, err
	}
	var info struct {
		Symbols []struct {
			Symbol               string `json:"symbol"`
			QuoteAsset           string `json:"quoteAsset"`
			Status               string `json:"status"`
			IsSpotTradingAllowed bool   `json:"isSpotTradingAllowed"`
		} `json:"symbols"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("exchange info: decode: %w", err)
	}
	var symbols []string
	for _, s := range info.Symbols {
		if s.QuoteAsset == "USDT" && s.Status == "TRADING" && s.IsSpotTradingAllowed {
			symbols = append(symbols, s.Symbol)
		}
	}
	return symbols, nil
}

func (f *BinanceFetcher) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
