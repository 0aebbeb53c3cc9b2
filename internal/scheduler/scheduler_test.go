package scheduler

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"BreakoutSentinel/internal/alertlog"
	"BreakoutSentinel/internal/collector"
	"BreakoutSentinel/internal/metrics"
	"BreakoutSentinel/internal/model"
	"BreakoutSentinel/internal/recorder"

	"github.com/prometheus/client_golang/prometheus"
)

// captureNotifier records every alert text it is asked to deliver.
type captureNotifier struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (c *captureNotifier) Name() string { return "capture" }

func (c *captureNotifier) Send(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, text)
	if c.fail {
		return errors.New("delivery failed")
	}
	return nil
}

func (c *captureNotifier) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

// breakoutSeries mirrors the collector test fixture: an alternating flat
// base with a wide green candle on tripled volume at the end.
func breakoutSeries() []model.Candle {
	candles := make([]model.Candle, 30)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	prevClose := 100.0
	for i := 0; i < 29; i++ {
		close := 100 + float64(i%2)
		candles[i] = model.Candle{
			OpenTime: base.Add(time.Duration(i) * 4 * time.Hour),
			Open:     prevClose,
			High:     math.Max(prevClose, close) + 0.2,
			Low:      math.Min(prevClose, close) - 0.2,
			Close:    close,
			Volume:   100,
		}
		prevClose = close
	}
	candles[29] = model.Candle{
		OpenTime: base.Add(29 * 4 * time.Hour),
		Open:     100, High: 106, Low: 99, Close: 105, Volume: 300,
	}
	return candles
}

func newTestScheduler(t *testing.T, fetcher collector.Fetcher, n *captureNotifier) *Scheduler {
	t.Helper()
	col := collector.NewCollector(fetcher, "4h", 30)
	store := alertlog.NewStore(filepath.Join(t.TempDir(), "alert_log.json"))
	m := metrics.New(prometheus.NewRegistry())
	s := NewScheduler(context.Background(), col, store, n, recorder.NewNoopRecorder(), m)
	s.PairDelay = 0
	return s
}

func TestRunPass_EmitsAndDeduplicates(t *testing.T) {
	fetcher := &collector.MockFetcher{
		SymbolList:   []string{"AAAUSDT"},
		Candles:      map[string][]model.Candle{"AAAUSDT": breakoutSeries()},
		QuoteVolumes: map[string]float64{"AAAUSDT": 1_000_000},
	}
	n := &captureNotifier{}
	s := newTestScheduler(t, fetcher, n)

	s.runPass()
	if n.count() != 1 {
		t.Fatalf("expected 1 alert after first pass, got %d", n.count())
	}
	if !strings.Contains(n.sent[0], "STRONG BREAKOUT") {
		t.Errorf("expected STRONG alert, got: %s", n.sent[0])
	}
	if !strings.Contains(n.sent[0], "AAAUSDT") {
		t.Errorf("alert should name the pair, got: %s", n.sent[0])
	}

	// Same day, same signal: dedup gate must suppress.
	s.runPass()
	if n.count() != 1 {
		t.Errorf("expected dedup to suppress second alert, got %d", n.count())
	}
}

func TestRunPass_NextDayAlertsAgain(t *testing.T) {
	fetcher := &collector.MockFetcher{
		SymbolList:   []string{"AAAUSDT"},
		Candles:      map[string][]model.Candle{"AAAUSDT": breakoutSeries()},
		QuoteVolumes: map[string]float64{"AAAUSDT": 1_000_000},
	}
	n := &captureNotifier{}
	s := newTestScheduler(t, fetcher, n)

	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	s.now = func() time.Time { return day }
	s.runPass()

	day = day.AddDate(0, 0, 1)
	s.runPass()
	if n.count() != 2 {
		t.Errorf("expected alert again the next day, got %d", n.count())
	}
}

func TestRunPass_FaultIsolation(t *testing.T) {
	// A failing symbol must not keep the rest of the pass from running.
	fetcher := &collector.MockFetcher{
		SymbolList: []string{"BADUSDT", "SHORTUSDT", "AAAUSDT"},
		Candles: map[string][]model.Candle{
			"SHORTUSDT": breakoutSeries()[:10],
			"AAAUSDT":   breakoutSeries(),
		},
		CandleErr:    map[string]error{"BADUSDT": errors.New("connection reset")},
		QuoteVolumes: map[string]float64{"AAAUSDT": 1_000_000},
	}
	n := &captureNotifier{}
	s := newTestScheduler(t, fetcher, n)

	s.runPass()
	if n.count() != 1 {
		t.Errorf("expected the healthy symbol to still alert, got %d", n.count())
	}
}

func TestRunPass_EmptyUniverse(t *testing.T) {
	fetcher := &collector.MockFetcher{SymbolsErr: errors.New("exchange down")}
	n := &captureNotifier{}
	s := newTestScheduler(t, fetcher, n)

	// Must simply end the pass early, not panic or alert.
	s.runPass()
	if n.count() != 0 {
		t.Errorf("expected no alerts on empty universe, got %d", n.count())
	}
}

func TestRunPass_NotifierFailureStillRecords(t *testing.T) {
	fetcher := &collector.MockFetcher{
		SymbolList:   []string{"AAAUSDT"},
		Candles:      map[string][]model.Candle{"AAAUSDT": breakoutSeries()},
		QuoteVolumes: map[string]float64{"AAAUSDT": 1_000_000},
	}
	n := &captureNotifier{fail: true}
	s := newTestScheduler(t, fetcher, n)

	s.runPass()
	// The alert counts as attempted: the gate stays closed for the day even
	// though delivery failed.
	s.runPass()
	if n.count() != 1 {
		t.Errorf("expected failed delivery to still close the dedup gate, got %d sends", n.count())
	}
}

func TestRunPass_BelowVolumeFloor(t *testing.T) {
	fetcher := &collector.MockFetcher{
		SymbolList:   []string{"AAAUSDT"},
		Candles:      map[string][]model.Candle{"AAAUSDT": breakoutSeries()},
		QuoteVolumes: map[string]float64{"AAAUSDT": 100_000},
	}
	n := &captureNotifier{}
	s := newTestScheduler(t, fetcher, n)

	s.runPass()
	if n.count() != 0 {
		t.Errorf("expected no alert below the liquidity floor, got %d", n.count())
	}
}
