// Package metrics exposes the dashboard's Prometheus instruments.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every instrument. Each instance owns a private registry so
// tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	reportDuration *prometheus.HistogramVec
	reportErrors   *prometheus.CounterVec
	interactions   *prometheus.CounterVec
	inFlight       prometheus.Gauge
	unresolved     prometheus.Counter
	events         *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		reportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finboard_report_duration_seconds",
				Help:    "Time spent building one report.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		reportErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_report_errors_total",
				Help: "Reports that failed, by kind and error type.",
			},
			[]string{"kind", "error_type"},
		),
		interactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_interactions_total",
				Help: "Menu interactions by outcome.",
			},
			[]string{"outcome"},
		),
		inFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "finboard_interactions_in_flight",
				Help: "Interactions currently holding a data source session.",
			},
		),
		unresolved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "finboard_unresolved_references_total",
				Help: "Receivables dropped because their customer does not exist.",
			},
		),
		events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_report_events_total",
				Help: "Report events handed to the broker, by outcome.",
			},
			[]string{"outcome"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) ObserveReport(kind string, d time.Duration) {
	m.reportDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) IncrReportError(kind, errorType string) {
	m.reportErrors.WithLabelValues(kind, errorType).Inc()
}

// IncrInteraction counts one finished interaction. outcome is "ok",
// "partial" or "unavailable".
func (m *Metrics) IncrInteraction(outcome string) {
	m.interactions.WithLabelValues(outcome).Inc()
}

// TrackInFlight marks an interaction as started and returns the func that
// marks it finished.
func (m *Metrics) TrackInFlight() func() {
	m.inFlight.Inc()
	return m.inFlight.Dec
}

func (m *Metrics) IncrUnresolved() {
	m.unresolved.Inc()
}

func (m *Metrics) IncrEvent(outcome string) {
	m.events.WithLabelValues(outcome).Inc()
}
