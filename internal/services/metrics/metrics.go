package metrics

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const divisor = 100

// Metrics holds Prometheus metric vectors for the action server.
type Metrics struct {
	// HTTP server metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Domain metrics
	ActionRunsTotal     *prometheus.CounterVec
	ActionRunDuration   *prometheus.HistogramVec
	UnknownActionsTotal prometheus.Counter
}

// NewMetrics constructs and registers all action-server metrics.
func NewMetrics(serviceName string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests received",
			},
			[]string{"method", "endpoint", "status_class"},
		),

		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of HTTP request latencies",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		ActionRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "action_runs_total",
				Help:      "Total number of dispatched action runs",
			},
			[]string{"action"},
		),

		ActionRunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "action_run_duration_seconds",
				Help:      "Histogram of action run latencies",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"action"},
		),

		UnknownActionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "unknown_actions_total",
				Help:      "Webhook requests naming an unregistered action",
			},
		),
	}

	// Go and process collectors are already part of the default registry.
	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ActionRunsTotal,
		m.ActionRunDuration,
		m.UnknownActionsTotal,
	)

	return m
}

// HTTPMiddleware returns a Gin middleware to instrument HTTP endpoints.
func (m *Metrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		d := time.Since(start)

		statusClass := getStatusClass(c.Writer.Status())

		m.HTTPRequestsTotal.With(prometheus.Labels{
			"method":       c.Request.Method,
			"endpoint":     c.FullPath(),
			"status_class": statusClass,
		}).Inc()
		m.HTTPRequestDuration.With(prometheus.Labels{
			"method":   c.Request.Method,
			"endpoint": c.FullPath(),
		}).Observe(d.Seconds())
	}
}

// ObserveActionRun records one dispatched action run.
func (m *Metrics) ObserveActionRun(action string, d time.Duration) {
	m.ActionRunsTotal.WithLabelValues(action).Inc()
	m.ActionRunDuration.WithLabelValues(action).Observe(d.Seconds())
}

func getStatusClass(code int) string {
	return fmt.Sprintf("%dxx", code/divisor)
}
