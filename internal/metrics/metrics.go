// Package metrics exposes Prometheus instrumentation for the API:
// per-route HTTP counters and histograms plus business counters for
// newsletter signups, magic-link auth, and the admin extraction tools.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// Business metrics
	newsletterSubscriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsletter_subscriptions_total",
			Help: "Total number of newsletter subscription attempts",
		},
		[]string{"status"}, // success, failure
	)

	magicLinksIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "magic_links_issued_total",
			Help: "Total number of magic links issued",
		},
	)

	magicLinksVerifiedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "magic_links_verified_total",
			Help: "Total number of magic link verification attempts",
		},
		[]string{"status"}, // success, failure
	)

	extractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extractions_total",
			Help: "Total number of admin extraction tool runs",
		},
		[]string{"tool", "status"}, // logo|episode|vectorize, success|failure
	)

	formValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_validations_total",
			Help: "Total number of investment form validation runs",
		},
		[]string{"status"}, // valid, invalid, fault
	)
)

// Middleware records request counts and latency per route. The route
// template (e.g. /api/v1/companies/:id) is used as the endpoint label
// to keep cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.FullPath() == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint, status).Observe(time.Since(start).Seconds())
	}
}

// RecordNewsletterSubscription records a subscription attempt.
func RecordNewsletterSubscription(success bool) {
	newsletterSubscriptionsTotal.WithLabelValues(statusLabel(success)).Inc()
}

// RecordMagicLinkIssued records a magic link being sent.
func RecordMagicLinkIssued() {
	magicLinksIssuedTotal.Inc()
}

// RecordMagicLinkVerified records a verification attempt.
func RecordMagicLinkVerified(success bool) {
	magicLinksVerifiedTotal.WithLabelValues(statusLabel(success)).Inc()
}

// RecordExtraction records a run of one of the admin scraping tools.
func RecordExtraction(tool string, success bool) {
	extractionsTotal.WithLabelValues(tool, statusLabel(success)).Inc()
}

// RecordFormValidation records the outcome of a validation run.
func RecordFormValidation(status string) {
	formValidationsTotal.WithLabelValues(status).Inc()
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
