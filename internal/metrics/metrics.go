// Package metrics defines the Prometheus instrumentation for the analysis
// service and serves it on a dedicated port.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Bounded cardinality constants for metric labels. Error kinds mirror the
// engine's taxonomy so the label set never grows past these values.
const (
	ErrorKindInsufficientData = "insufficient_data"
	ErrorKindInvalidInput     = "invalid_input"
	ErrorKindBadRequest       = "bad_request"
	ErrorKindNone             = "none"
)

// Analysis metrics
var (
	// Analyses performed, by outcome
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finsight_analyses_total",
		Help: "Total number of risk analyses, labelled by error kind ('none' for success)",
	}, []string{"error_kind"})

	// Analysis latency
	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "finsight_analysis_duration_ms",
		Help:    "Risk analysis duration in milliseconds",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100},
	})

	// Distribution of composite ratings produced
	RatingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finsight_ratings_total",
		Help: "Composite risk ratings produced, labelled by score (1-5)",
	}, []string{"score"})

	// Series lengths seen at the analyze endpoint
	SeriesLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "finsight_series_length",
		Help:    "Number of price observations per analysis request",
		Buckets: []float64{2, 10, 30, 90, 252, 504, 1260},
	})
)

// HTTP metrics
var (
	APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finsight_api_requests_total",
		Help: "Total API requests by method, path and status code",
	}, []string{"method", "path", "status"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "finsight_api_request_duration_ms",
		Help:    "API request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"method", "path"})
)

// RecordAnalysis records one engine invocation.
func RecordAnalysis(errorKind string, durationMs float64, seriesLen int) {
	AnalysesTotal.WithLabelValues(errorKind).Inc()
	AnalysisDuration.Observe(durationMs)
	SeriesLength.Observe(float64(seriesLen))
}

// RecordRating records the composite score of a successful analysis.
func RecordRating(score int) {
	RatingsTotal.WithLabelValues(strconv.Itoa(score)).Inc()
}

// RecordAPIRequest records one handled HTTP request.
func RecordAPIRequest(method, path, status string, durationMs float64) {
	APIRequests.WithLabelValues(method, path, status).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(durationMs)
}
