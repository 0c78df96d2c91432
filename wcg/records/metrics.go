package records

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// recordsTotal counts ingested lines.
	// Labels: kind "pages"|"links", result "retained"|"skipped"|"malformed"
	recordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wcg_records_total",
		Help: "Export records read by kind and result",
	}, []string{"kind", "result"})

	loadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wcg_records_load_duration_seconds",
		Help:    "Time to load one export source",
		Buckets: []float64{0.001, 0.01, 0.1, 1, 10, 60, 300},
	}, []string{"kind"})
)
