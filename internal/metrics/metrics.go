// Package metrics provides Prometheus metrics for the content gateway.
// Metrics are grouped by concern: HTTP traffic, gateway reads and writes,
// upstream availability and the static dataset.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "banho"
)

var (
	// HTTP metrics - track request volume and latency
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route, and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// Gateway metrics - where each read was served from
	GatewayReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "reads_total",
			Help:      "Gateway reads by domain and origin (remote, local, static, empty)",
		},
		[]string{"domain", "origin"},
	)

	GatewayMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "mutations_total",
			Help:      "Gateway mutations by domain, operation, mode and result",
		},
		[]string{"domain", "op", "mode", "result"},
	)

	UpstreamFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "failures_total",
			Help:      "Upstream requests that failed and were recovered by a fallback",
		},
		[]string{"domain"},
	)

	// Upstream probe metrics
	UpstreamAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "available",
			Help:      "1 when the last availability probe succeeded, 0 otherwise",
		},
	)

	UpstreamProbeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "probe_duration_seconds",
			Help:      "Availability probe duration in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	// Dataset metrics
	DatasetEntities = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "entities",
			Help:      "Number of static entities loaded",
		},
	)

	DatasetReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "reloads_total",
			Help:      "Static dataset reloads by result",
		},
		[]string{"result"},
	)
)

// Recorder feeds gateway events into the package metrics.
type Recorder struct{}

func (Recorder) Read(domain, origin string) {
	GatewayReadsTotal.WithLabelValues(domain, origin).Inc()
}

func (Recorder) Mutation(domain, op, mode, result string) {
	GatewayMutationsTotal.WithLabelValues(domain, op, mode, result).Inc()
}

func (Recorder) UpstreamFailure(domain string) {
	UpstreamFailuresTotal.WithLabelValues(domain).Inc()
}

// ObserveProbe records one availability check.
func ObserveProbe(available bool, latency time.Duration) {
	if available {
		UpstreamAvailable.Set(1)
	} else {
		UpstreamAvailable.Set(0)
	}
	UpstreamProbeDuration.Observe(latency.Seconds())
}

// ObserveReload records a dataset reload and, on success, its size.
func ObserveReload(entities int, err error) {
	if err != nil {
		DatasetReloadsTotal.WithLabelValues("failure").Inc()
		return
	}
	DatasetReloadsTotal.WithLabelValues("success").Inc()
	DatasetEntities.Set(float64(entities))
}

// ObserveRequest records one HTTP request.
func ObserveRequest(method, route string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, statusClass(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
