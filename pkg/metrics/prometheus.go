package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	scansTotal     *prometheus.CounterVec
	regimesTotal   *prometheus.CounterVec
	macroOverrides prometheus.Counter
	historyWrites  *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		scansTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commander_scans_total",
				Help: "Total number of strategy scans by outcome",
			},
			[]string{"strategy", "signal"},
		),
		regimesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commander_regimes_total",
				Help: "Total number of desk evaluations by classified regime",
			},
			[]string{"regime"},
		),
		macroOverrides: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "commander_macro_overrides_total",
				Help: "Total number of evaluations overridden by a binary macro event",
			},
		),
		historyWrites: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commander_history_writes_total",
				Help: "Total number of scan records written per backend",
			},
			[]string{"backend"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commander_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "commander_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordScan records one scored strategy scan.
func (r *Recorder) RecordScan(strategy, signal string) {
	r.scansTotal.WithLabelValues(strategy, signal).Inc()
}

// RecordRegime records one desk regime classification.
func (r *Recorder) RecordRegime(regime string) {
	r.regimesTotal.WithLabelValues(regime).Inc()
}

// RecordMacroOverride records a binary-event override.
func (r *Recorder) RecordMacroOverride() {
	r.macroOverrides.Inc()
}

// RecordHistoryWrite records a scan record written to a backend.
func (r *Recorder) RecordHistoryWrite(backend string) {
	r.historyWrites.WithLabelValues(backend).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
