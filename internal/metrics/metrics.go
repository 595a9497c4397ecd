package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xtding233/gemcalc/internal/gem"
)

const namespace = "gemcalc"

// Metrics holds the collectors for engine and advisor activity. Each
// instance owns its registry so tests and commands do not share state.
type Metrics struct {
	Registry *prometheus.Registry

	adviseTotal      *prometheus.CounterVec
	adviseDuration   prometheus.Histogram
	engineEvaluation *prometheus.GaugeVec
	engineMemoHits   *prometheus.GaugeVec
	engineMemoSize   *prometheus.GaugeVec
	engineResets     prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		adviseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "advisor",
			Name:      "advise_total",
			Help:      "Advise calls by resulting advice",
		}, []string{"advice"}),
		adviseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "advisor",
			Name:      "advise_duration_seconds",
			Help:      "Wall time of one advise call",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}),
		engineEvaluation: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "evaluations",
			Help:      "Values computed by the engine since its last reset",
		}, []string{"goal"}),
		engineMemoHits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "memo_hits",
			Help:      "Memo cache hits since the engine's last reset",
		}, []string{"goal"}),
		engineMemoSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "memo_entries",
			Help:      "Entries held in the engine's memo cache",
		}, []string{"goal"}),
		engineResets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "invalidations_total",
			Help:      "Times cached engines were discarded",
		}),
	}
	reg.MustRegister(m.adviseTotal, m.adviseDuration, m.engineEvaluation,
		m.engineMemoHits, m.engineMemoSize, m.engineResets)
	return m
}

// ObserveAdvise records one advise call.
func (m *Metrics) ObserveAdvise(advice string, took time.Duration) {
	if m == nil {
		return
	}
	m.adviseTotal.WithLabelValues(advice).Inc()
	m.adviseDuration.Observe(took.Seconds())
}

// ObserveEngine publishes an engine's cache counters under its goal key.
func (m *Metrics) ObserveEngine(goal string, st gem.Stats) {
	if m == nil {
		return
	}
	m.engineEvaluation.WithLabelValues(goal).Set(float64(st.Evaluations))
	m.engineMemoHits.WithLabelValues(goal).Set(float64(st.MemoHits))
	m.engineMemoSize.WithLabelValues(goal).Set(float64(st.MemoSize))
}

// ObserveInvalidation counts a cache discard and clears per-goal gauges.
func (m *Metrics) ObserveInvalidation() {
	if m == nil {
		return
	}
	m.engineResets.Inc()
	m.engineEvaluation.Reset()
	m.engineMemoHits.Reset()
	m.engineMemoSize.Reset()
}

// WriteTextfile dumps the registry in the Prometheus text format, for the
// node_exporter textfile collector or plain inspection.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
