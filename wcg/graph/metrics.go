package graph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// traversalsTotal counts queries by operation and outcome.
	// Labels: op; result "found" | "empty"
	traversalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wcg_traversals_total",
		Help: "Category graph traversals by operation and result",
	}, []string{"op", "result"})

	traversalDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wcg_traversal_duration_seconds",
		Help:    "Category graph traversal duration",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1, 10},
	}, []string{"op"})

	traversalExpanded = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wcg_traversal_expanded_nodes",
		Help:    "Nodes expanded per traversal",
		Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
	}, []string{"op"})
)
