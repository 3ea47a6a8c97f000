package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/league-standings/internal/platform/resilience"
)

// Metrics owns a private Prometheus registry with the standings collectors.
type Metrics struct {
	registry      *prometheus.Registry
	computeTotal  *prometheus.CounterVec
	computeTime   *prometheus.HistogramVec
	loadFailures  *prometheus.CounterVec
	tableTeams    prometheus.Gauge
	sourceMatches prometheus.Gauge
	breakerState  *prometheus.GaugeVec
}

func NewMetrics(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	labels := prometheus.Labels{"service": serviceName}
	m := &Metrics{
		registry: registry,
		computeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "standings",
			Name:        "compute_total",
			Help:        "Number of standings snapshots computed.",
			ConstLabels: labels,
		}, []string{"source"}),
		computeTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "standings",
			Name:        "compute_duration_seconds",
			Help:        "Time spent computing a standings snapshot.",
			ConstLabels: labels,
			Buckets:     []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"source"}),
		loadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "standings",
			Name:        "source_load_failures_total",
			Help:        "Number of failed results document loads.",
			ConstLabels: labels,
		}, []string{"source"}),
		tableTeams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "standings",
			Name:        "table_teams",
			Help:        "Teams in the last computed table.",
			ConstLabels: labels,
		}),
		sourceMatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "standings",
			Name:        "document_matches",
			Help:        "Matches in the last computed document.",
			ConstLabels: labels,
		}),
		breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   "standings",
			Name:        "source_circuit_state",
			Help:        "Current results source circuit breaker state (1 = active).",
			ConstLabels: labels,
		}, []string{"state"}),
	}
	registry.MustRegister(m.computeTotal, m.computeTime, m.loadFailures, m.tableTeams, m.sourceMatches, m.breakerState)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveCompute(source string, elapsed time.Duration, teams, matches int) {
	m.computeTotal.WithLabelValues(source).Inc()
	m.computeTime.WithLabelValues(source).Observe(elapsed.Seconds())
	if source != "request" {
		m.tableTeams.Set(float64(teams))
		m.sourceMatches.Set(float64(matches))
	}
}

func (m *Metrics) IncLoadFailure(source string) {
	m.loadFailures.WithLabelValues(source).Inc()
}

// TrackBreaker exports the breaker state and keeps it current. A nil breaker
// is ignored.
func (m *Metrics) TrackBreaker(b *resilience.CircuitBreaker) {
	if b == nil {
		return
	}
	m.setBreakerState(b.State())
	b.OnStateChange(m.setBreakerState)
}

func (m *Metrics) setBreakerState(state resilience.CircuitState) {
	for _, s := range []resilience.CircuitState{resilience.CircuitStateClosed, resilience.CircuitStateOpen, resilience.CircuitStateHalfOpen} {
		value := 0.0
		if s == state {
			value = 1
		}
		m.breakerState.WithLabelValues(string(s)).Set(value)
	}
}
