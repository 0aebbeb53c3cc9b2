package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instruments for the scan loop.
type Metrics struct {
	PassesTotal      prometheus.Counter
	SymbolsScanned   prometheus.Counter
	SymbolsSkipped   prometheus.Counter
	FetchErrors      prometheus.Counter
	SignalsTotal     *prometheus.CounterVec // label: tier
	AlertsSuppressed prometheus.Counter
	UniverseSize     prometheus.Gauge
	PassDuration     prometheus.Gauge
}

// New registers and returns all metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PassesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_passes_total",
			Help: "Total completed scan passes",
		}),
		SymbolsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_symbols_scanned_total",
			Help: "Total symbols successfully analyzed",
		}),
		SymbolsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_symbols_skipped_total",
			Help: "Total symbols skipped for insufficient or malformed data",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_fetch_errors_total",
			Help: "Total upstream fetch failures",
		}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scanner_signals_total",
			Help: "Total breakout signals emitted",
		}, []string{"tier"}),
		AlertsSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scanner_alerts_suppressed_total",
			Help: "Signals suppressed by the once-per-day dedup gate",
		}),
		UniverseSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scanner_universe_size",
			Help: "Symbols in the most recently resolved universe",
		}),
		PassDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scanner_pass_duration_seconds",
			Help: "Duration of the most recent scan pass",
		}),
	}
	reg.MustRegister(
		m.PassesTotal, m.SymbolsScanned, m.SymbolsSkipped, m.FetchErrors,
		m.SignalsTotal, m.AlertsSuppressed, m.UniverseSize, m.PassDuration,
	)
	return m
}
