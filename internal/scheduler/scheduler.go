package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"BreakoutSentinel/internal/alertlog"
	"BreakoutSentinel/internal/calculator"
	"BreakoutSentinel/internal/collector"
	"BreakoutSentinel/internal/metrics"
	"BreakoutSentinel/internal/notifier"
	"BreakoutSentinel/internal/recorder"
	"BreakoutSentinel/internal/strategy"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Scheduler drives repeated scan passes over the symbol universe. Symbol
// processing within a pass is strictly sequential with a small delay
// between calls, to stay polite to the upstream API.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Store     *alertlog.Store
	Notifier  notifier.Notifier
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics
	Ctx       context.Context
	PairDelay time.Duration

	running atomic.Bool
	now     func() time.Time
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, store *alertlog.Store,
	n notifier.Notifier, rec recorder.Recorder, m *metrics.Metrics) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Store:     store,
		Notifier:  n,
		Recorder:  rec,
		Metrics:   m,
		Ctx:       ctx,
		PairDelay: 100 * time.Millisecond,
		now:       time.Now,
	}
}

// Register schedules the scan pass on the given cron spec.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.runPass); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler and kicks off an immediate first pass.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
	go s.runPass()
}

// Stop stops the cron scheduler gracefully. An in-flight pass finishes on
// its own once the context is cancelled.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// runPass executes one full pass over the universe. A firing that overlaps
// a still-running pass is skipped rather than stacked.
func (s *Scheduler) runPass() {
	if !s.running.CompareAndSwap(false, true) {
		log.Println("[WARN] previous scan pass still running, skipping this firing")
		return
	}
	defer s.running.Store(false)

	passID := uuid.NewString()[:8]
	start := s.now()

	symbols := s.Collector.Symbols(s.Ctx)
	s.Metrics.UniverseSize.Set(float64(len(symbols)))
	if len(symbols) == 0 {
		log.Printf("[WARN] pass %s: empty universe, ending pass early", passID)
	} else {
		log.Printf("[INFO] pass %s: scanning %d symbols", passID, len(symbols))
	}

	var scanned, skipped, signals int
	for _, symbol := range symbols {
		select {
		case <-s.Ctx.Done():
			log.Printf("[INFO] pass %s: cancelled", passID)
			return
		default:
		}

		emitted, err := s.scanSymbol(passID, symbol)
		switch {
		case err == nil:
			scanned++
			if emitted {
				signals++
			}
		case errors.Is(err, collector.ErrInsufficientData):
			skipped++
			s.Metrics.SymbolsSkipped.Inc()
			log.Printf("[INFO] pass %s: skip %s: %v", passID, symbol, err)
		default:
			skipped++
			s.Metrics.FetchErrors.Inc()
			log.Printf("[WARN] pass %s: %s: %v", passID, symbol, err)
		}

		time.Sleep(s.PairDelay)
	}

	if err := s.Store.Persist(); err != nil {
		// In-memory state stays correct for this run; only a restart may
		// lose recent dedup history.
		log.Printf("[ERROR] pass %s: persist alert log: %v", passID, err)
	}

	duration := s.now().Sub(start)
	s.Metrics.PassesTotal.Inc()
	s.Metrics.SymbolsScanned.Add(float64(scanned))
	s.Metrics.PassDuration.Set(duration.Seconds())

	if err := s.Recorder.RecordPass(&recorder.PassSummary{
		PassID:       passID,
		UniverseSize: len(symbols),
		Scanned:      scanned,
		Skipped:      skipped,
		Signals:      signals,
		Duration:     duration,
	}); err != nil {
		log.Printf("[ERROR] pass %s: record pass: %v", passID, err)
	}

	log.Printf("[INFO] pass %s: done in %s (scanned=%d skipped=%d signals=%d)",
		passID, duration.Round(time.Millisecond), scanned, skipped, signals)
}

// scanSymbol runs the full pipeline for one symbol and reports whether an
// alert was emitted.
func (s *Scheduler) scanSymbol(passID, symbol string) (bool, error) {
	view, err := s.Collector.Collect(s.Ctx, symbol)
	if err != nil {
		return false, err
	}

	baseHigh, baseLow, err := calculator.BaseRange(view.Candles, strategy.BaseLookback)
	if err != nil {
		return false, fmt.Errorf("%v: %w", err, collector.ErrInsufficientData)
	}

	n := len(view.Rows)
	sig := strategy.Classify(strategy.Snapshot{
		Symbol:        symbol,
		Prev:          view.Rows[n-2],
		Last:          view.Rows[n-1],
		LastCandle:    view.Candles[n-1],
		BaseHigh:      baseHigh,
		BaseLow:       baseLow,
		QuoteVolume24: view.QuoteVolume24,
	})
	if sig == nil {
		return false, nil
	}

	now := s.now()
	if !s.Store.ShouldAlert(symbol, now) {
		s.Metrics.AlertsSuppressed.Inc()
		return false, nil
	}

	text := notifier.FormatBreakoutAlert(sig)
	if err := s.Notifier.Send(s.Ctx, text); err != nil {
		log.Printf("[ERROR] pass %s: send alert for %s: %v", passID, symbol, err)
	}
	// The alert counts as attempted even when delivery fails, so the dedup
	// gate still closes for the rest of the day.
	s.Store.Record(symbol, now)
	s.Metrics.SignalsTotal.WithLabelValues(string(sig.Tier)).Inc()

	if err := s.Recorder.RecordSignal(&recorder.SignalRecord{
		PassID:        passID,
		Symbol:        symbol,
		Tier:          string(sig.Tier),
		Close:         sig.Close,
		RSI:           sig.RSI,
		Volume:        sig.Volume,
		QuoteVolume24: view.QuoteVolume24,
		BaseRangePct:  sig.BaseRangePct,
		BodyPct:       sig.BodyPct,
	}); err != nil {
		log.Printf("[ERROR] pass %s: record signal for %s: %v", passID, symbol, err)
	}

	log.Printf("[INFO] pass %s: %s breakout on %s (rsi=%.2f base=%.2f%% body=%.2f%%)",
		passID, sig.Tier, symbol, sig.RSI, sig.BaseRangePct, sig.BodyPct)
	return true, nil
}
