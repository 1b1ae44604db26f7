package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fonttree_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// AnalyzeDuration tracks model latency per provider.
	AnalyzeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fonttree_analyze_duration_seconds",
		Help:    "Time spent waiting on the model for one design analysis.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"provider"})

	// AnalyzeFailures counts analyses that ended without a result, by reason.
	AnalyzeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fonttree_analyze_failures_total",
		Help: "Design analyses that returned an error, by failure reason.",
	}, []string{"reason"})

	// InputChars tracks the distribution of fullText lengths.
	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fonttree_input_chars",
		Help:    "Number of characters in the analysed fullText.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	// FontsPerRequest tracks how many fonts each design uses.
	FontsPerRequest = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fonttree_fonts_per_request",
		Help:    "Number of usedFonts in an analysis request.",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
	})

	// ModelConfigured is 1 when a model credential was present at startup.
	ModelConfigured = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fonttree_model_configured",
		Help: "Whether the model backend was configured at startup (1) or not (0).",
	}, []string{"provider"})
)
