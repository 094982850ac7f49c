// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fallback kinds.
const (
	FallbackQuestions = "questions"
	FallbackRemedies  = "remedies"
)

var (
	RemedyRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remedy_requests_total",
			Help: "Total number of generation requests by outcome",
		},
		[]string{"operation", "status"},
	)

	RemedyFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remedy_fallbacks_total",
			Help: "Total number of responses served from the fixed fallback content",
		},
		[]string{"kind"},
	)

	GenAIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genai_request_duration_seconds",
			Help:    "Duration of chat-completion gateway calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"operation"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_active",
			Help: "Number of in-flight HTTP requests per route",
		},
		[]string{"route"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsletter_notifications_total",
			Help: "Newsletter notifications by channel and status",
		},
		[]string{"channel", "status"},
	)
)
