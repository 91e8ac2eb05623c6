// Package metrics exposes Prometheus instrumentation: per-route HTTP
// counters/latency and a few domain gauges (model size, constraint
// count, optimization outcomes).
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec

	modelReactions   prometheus.Gauge
	modelMetabolites prometheus.Gauge
	constraintsTotal prometheus.Gauge
	optimizations    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "atacflux",
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status code.",
			},
			[]string{"method", "route", "code"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "atacflux",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		modelReactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "atacflux",
			Name:      "model_reactions",
			Help:      "Reactions in the loaded model. 0 when none is loaded.",
		}),
		modelMetabolites: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "atacflux",
			Name:      "model_metabolites",
			Help:      "Metabolites in the loaded model. 0 when none is loaded.",
		}),
		constraintsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "atacflux",
			Name:      "constraints",
			Help:      "Stored constraints.",
		}),
		optimizations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "atacflux",
				Name:      "optimizations_total",
				Help:      "FBA runs by solver status.",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.latency,
		m.modelReactions, m.modelMetabolites,
		m.constraintsTotal, m.optimizations,
	)
	return m
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware records request counts and latency per echo route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path() // the registered pattern, not the raw URL
			method := c.Request().Method
			code := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					code = he.Code
				}
			}

			m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
			m.latency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// SetModelSize publishes the loaded model's dimensions.
func (m *Metrics) SetModelSize(reactions, metabolites int) {
	m.modelReactions.Set(float64(reactions))
	m.modelMetabolites.Set(float64(metabolites))
}

// SetConstraints publishes the stored constraint count.
func (m *Metrics) SetConstraints(n int) {
	m.constraintsTotal.Set(float64(n))
}

// CountOptimization counts one FBA run with its solver status.
func (m *Metrics) CountOptimization(status string) {
	m.optimizations.WithLabelValues(status).Inc()
}
