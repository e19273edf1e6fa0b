package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stormhead-org/community/internal/lib"
)

// UnknownEvent labels messages whose key names no known event.
const UnknownEvent = "unknown"

type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	events     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "community",
			Name:      "operations_total",
			Help:      "GraphQL operations by name and outcome kind.",
		},
		[]string{"operation", "result"},
	)
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "community",
			Name:      "events_consumed_total",
			Help:      "Broker events handled by the worker.",
		},
		[]string{"event", "result"},
	)

	registry.MustRegister(
		operations,
		events,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:   registry,
		operations: operations,
		events:     events,
	}
}

// ObserveOperation counts one API call; result is "ok" or the error kind.
func (m *Metrics) ObserveOperation(operation string, err error) {
	m.operations.WithLabelValues(operation, result(err)).Inc()
}

func (m *Metrics) ObserveEvent(event string, err error) {
	m.events.WithLabelValues(event, result(err)).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	return string(lib.KindOf(err))
}
