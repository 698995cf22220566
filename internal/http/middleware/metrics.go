// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file exposes Prometheus instrumentation. Metrics() measures request
// counts, latencies, in-flight concurrency, and response sizes, labeled by
// method, registered route path, and status code so label cardinality stays
// bounded. It also hosts the ingestion counters incremented by the upload
// pipeline (uploads processed, lead rows assigned).
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// httpReqs counts requests by method, route path, and status code.
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// httpLat records request duration in seconds by method and route path.
	// Status is omitted to keep histogram cardinality lower.
	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// httpInflight gauges the number of in-flight requests.
	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// httpRespSize captures response sizes in bytes by method and route path.
	// Buckets are tuned for JSON API payloads.
	httpRespSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_size_bytes",
			Help: "Size of HTTP responses in bytes.",
			Buckets: []float64{
				200, 500, 1 << 10, 2 << 10, 5 << 10,
				10 << 10, 25 << 10, 50 << 10,
				100 << 10, 250 << 10, 500 << 10,
				1 << 20, 2 << 20, 5 << 20,
			},
		},
		[]string{"method", "path"},
	)

	// uploadsProcessed counts lead-file uploads by terminal outcome
	// ("distributed", "rejected", "failed").
	uploadsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_uploads_processed_total",
			Help: "Total number of lead file uploads by outcome.",
		},
		[]string{"outcome"},
	)

	// leadsAssigned counts individual lead rows written as assignments.
	leadsAssigned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_assigned_total",
			Help: "Total number of lead rows assigned to agents.",
		},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, httpRespSize,
		uploadsProcessed, leadsAssigned)
}

// ObserveUpload records the terminal outcome of one upload attempt and, for
// distributed uploads, the number of lead rows that were assigned.
func ObserveUpload(outcome string, rows int) {
	uploadsProcessed.WithLabelValues(outcome).Inc()
	if rows > 0 {
		leadsAssigned.Add(float64(rows))
	}
}

// Metrics returns a Gin middleware that instruments requests with Prometheus.
//
// Per request it increments http_requests_total(method, path, status),
// observes http_request_duration_seconds and http_response_size_bytes, and
// tracks the http_requests_inflight gauge. The "path" label uses the
// registered route (c.FullPath()) to avoid unbounded cardinality from raw
// URLs, falling back to the raw path when no route matched.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		dur := time.Since(start).Seconds()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())
		size := c.Writer.Size() // -1 when unknown

		httpReqs.WithLabelValues(method, path, status).Inc()
		httpLat.WithLabelValues(method, path).Observe(dur)
		if size >= 0 {
			httpRespSize.WithLabelValues(method, path).Observe(float64(size))
		}
	}
}
