// Package metrics records request and store-call metrics in a Prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"keyVaultAPI/internal/vault"
)

// DefaultMetricNamespace is the prefix of metric names.
const DefaultMetricNamespace = "keyvault_api"

// Metrics owns its registry so several instances never collide.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	storeCalls      *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: DefaultMetricNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: DefaultMetricNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		storeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: DefaultMetricNamespace,
			Name:      "store_calls_total",
			Help:      "Secret store calls by backend, operation and outcome.",
		}, []string{"backend", "operation", "outcome"}),
		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: DefaultMetricNamespace,
			Name:      "store_call_duration_seconds",
			Help:      "Secret store call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend", "operation"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.storeCalls,
		m.storeDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one handled HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveStoreCall implements vault.Observer. Outcome is ok, store_error
// (the store answered with a status) or error.
func (m *Metrics) ObserveStoreCall(backend, operation string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if _, ok := vault.AsError(err); ok {
			outcome = "store_error"
		}
	}

	m.storeCalls.WithLabelValues(backend, operation, outcome).Inc()
	m.storeDuration.WithLabelValues(backend, operation).Observe(elapsed.Seconds())
}

var _ vault.Observer = (*Metrics)(nil)
