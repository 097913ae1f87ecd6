// Package metrics holds process-level HTTP metrics. Compliance-specific
// metrics live next to the compliance service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP request metrics.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
}

// New creates and registers the HTTP metrics.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vetgate_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vetgate_http_requests_total",
			Help: "HTTP requests by route pattern and status.",
		}, []string{"method", "route", "status"}),
	}
}

// Latency is chi middleware recording per-route request counts and latency.
func Latency(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
