package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search and dataset Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "projectsearch",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"outcome"}, // "hit" / "miss" / "empty"
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "projectsearch",
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "projectsearch",
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	DatasetFeatures = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "projectsearch",
			Name:      "dataset_features",
			Help:      "Number of features in the loaded dataset",
		},
	)

	DatasetLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "projectsearch",
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts",
		},
		[]string{"source", "status"},
	)
)

// Search outcome labels.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeEmpty = "empty"
)

var registerSearch sync.Once

// RegisterSearchMetrics registers search and dataset metrics with the default registry.
func RegisterSearchMetrics() {
	registerSearch.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchResults)
		prometheus.MustRegister(SearchDuration)
		prometheus.MustRegister(DatasetFeatures)
		prometheus.MustRegister(DatasetLoadsTotal)
	})
}
