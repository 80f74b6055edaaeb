package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline metrics
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "serieslens_analyses_total",
			Help: "Total number of analysis runs",
		},
		[]string{"source", "status"}, // source: upload/generate
	)

	PointsAnalyzed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "serieslens_points_analyzed_total",
			Help: "Total number of points labeled by the detector",
		},
	)

	AnomaliesDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "serieslens_anomalies_detected_total",
			Help: "Total number of points labeled anomalous",
		},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "serieslens_analysis_duration_seconds",
			Help:    "Analysis pipeline duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8), // 100µs to ~1.6s
		},
	)

	InsightsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "serieslens_insights_total",
			Help: "Total number of insights produced",
		},
		[]string{"category"},
	)

	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "serieslens_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "serieslens_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Outbound metrics
	AssistantRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "serieslens_assistant_requests_total",
			Help: "Total number of questions forwarded to the assistant service",
		},
		[]string{"status"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "serieslens_notifications_total",
			Help: "Total number of Telegram messages sent",
		},
		[]string{"status"},
	)
)
