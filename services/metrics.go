package services

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// relationshipOperations counts relationship mutations by operation and outcome
	relationshipOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "friendgraph_relationship_operations_total",
		Help: "Relationship operations by operation and result",
	}, []string{"operation", "result"})

	// searchBranchDuration tracks the latency of each search branch
	searchBranchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "friendgraph_search_branch_duration_seconds",
		Help:    "Search branch duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"branch"})

	// searchBranchResults tracks how many results each branch returned after filtering
	searchBranchResults = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "friendgraph_search_branch_results",
		Help:    "Visible results returned per search branch",
		Buckets: []float64{0, 1, 5, 10, 50, 100, 500},
	}, []string{"branch"})
)

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "error"
	}
}
