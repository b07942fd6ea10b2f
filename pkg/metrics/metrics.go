package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric. It must be a valid Prometheus name.
const Namespace = "emergencykb"

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge
	RateLimited     prometheus.Counter

	QueriesTotal     *prometheus.CounterVec
	QueryResults     *prometheus.HistogramVec
	RedFlagMatches   *prometheus.CounterVec
	TriageCategories *prometheus.CounterVec

	CorpusProtocols prometheus.Gauge
	CorpusRedFlags  prometheus.Gauge
	CorpusReloads   *prometheus.CounterVec

	AuditEntriesTotal  prometheus.Counter
	AuditBufferDropped prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewCollector registers the service metrics with reg. Passing a fresh
// prometheus.NewRegistry keeps tests isolated from the global registry.
func NewCollector(reg *prometheus.Registry) *Collector {
	f := promauto.With(reg)

	return &Collector{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter.",
		}),

		QueriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "kb",
			Name:      "queries_total",
			Help:      "Knowledge base queries by action.",
		}, []string{"action"}),

		QueryResults: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "kb",
			Name:      "query_results",
			Help:      "Number of records returned per query.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50},
		}, []string{"action"}),

		RedFlagMatches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "kb",
			Name:      "red_flag_matches_total",
			Help:      "Red flags matched by symptom checks, by urgency.",
		}, []string{"urgency"}),

		TriageCategories: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "triage",
			Name:      "classifications_total",
			Help:      "Triage classifications by category and algorithm.",
		}, []string{"category", "algorithm"}),

		CorpusProtocols: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "corpus",
			Name:      "protocols",
			Help:      "Protocols in the active corpus.",
		}),

		CorpusRedFlags: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "corpus",
			Name:      "red_flags",
			Help:      "Red flags in the active corpus.",
		}),

		CorpusReloads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "corpus",
			Name:      "reloads_total",
			Help:      "Corpus reload attempts by outcome.",
		}, []string{"outcome"}),

		AuditEntriesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "audit",
			Name:      "entries_total",
			Help:      "Total audit log entries written.",
		}),

		AuditBufferDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "audit",
			Name:      "buffer_dropped_total",
			Help:      "Audit entries dropped due to full buffer. Alert if non-zero.",
		}),

		gatherer: reg,
	}
}

// NewRegistry returns a registry carrying the Go runtime and process
// collectors alongside whatever NewCollector adds.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
