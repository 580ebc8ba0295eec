// Package metrics expone los contadores del motor de reservas en Prometheus.
// Un *Metrics nil es válido: todos los métodos son no-op.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry    *prometheus.Registry
	operations  *prometheus.CounterVec
	scores      prometheus.Histogram
	resolutions *prometheus.CounterVec
	returns     prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shelter",
			Name:      "reservation_operations_total",
			Help:      "Reservation queue operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shelter",
			Name:      "compatibility_score",
			Help:      "Compatibility rate assigned to new reservations.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shelter",
			Name:      "queue_resolutions_total",
			Help:      "Reservation queues cleared, by resolution.",
		}, []string{"resolution"}),
		returns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shelter",
			Name:      "adoption_returns_total",
			Help:      "Adoptions returned to the shelter.",
		}),
	}
	reg.MustRegister(
		m.operations,
		m.scores,
		m.resolutions,
		m.returns,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Operation(name string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.operations.WithLabelValues(name, outcome).Inc()
}

func (m *Metrics) Score(rate float64) {
	if m == nil {
		return
	}
	m.scores.Observe(rate)
}

func (m *Metrics) QueueResolved(resolution string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(resolution).Inc()
}

func (m *Metrics) Returned() {
	if m == nil {
		return
	}
	m.returns.Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry se expone para tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
