package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search pipeline Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socialsearch",
			Name:      "search_requests_total",
			Help:      "Total number of engine search requests",
		},
		[]string{"status"}, // "ok" / "error" / "rejected"
	)

	SearchRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socialsearch",
			Name:      "search_rejected_total",
			Help:      "Searches rejected before reaching the engine",
		},
		[]string{"reason"},
	)

	SearchIndicesPerRequest = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "socialsearch",
			Name:      "search_indices_per_request",
			Help:      "Number of tenant indexes a search fans out to",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	SearchShardsPerRequest = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "socialsearch",
			Name:      "search_shards_per_request",
			Help:      "Number of shards a search touches",
			Buckets:   []float64{1, 5, 10, 50, 100, 250, 500, 1000, 2500},
		},
	)

	SearchEngineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "socialsearch",
			Name:      "search_engine_duration_seconds",
			Help:      "Engine fan-out duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	FederationResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socialsearch",
			Name:      "federation_resolutions_total",
			Help:      "Index name resolutions for live searches by strategy",
		},
		[]string{"strategy"},
	)

	IndexedDocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socialsearch",
			Name:      "indexed_documents_total",
			Help:      "Documents written by bulk indexing",
		},
		[]string{"kind", "status"}, // status: "ok" / "error"
	)
)

var registerOnce sync.Once

// Register adds the HTTP, search and indexing collectors to the default registry.
// Call it from main; repeated calls are no-ops.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			SearchRequestsTotal,
			SearchRejectedTotal,
			SearchIndicesPerRequest,
			SearchShardsPerRequest,
			SearchEngineDuration,
			FederationResolutionsTotal,
			IndexedDocumentsTotal,
		)
	})
}
