// Package metrics holds shared Prometheus collectors and helpers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Scoring path label values for ScanDuration.
const (
	PathClassifier = "classifier"
	PathFallback   = "fallback"
)

// ScanDuration tracks end-to-end scan pipeline latency per scoring path.
var ScanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint: gochecknoglobals
	Namespace: "linkshield",
	Name:      "scan_duration_seconds",
	Help:      "End-to-end URL scan duration by scoring path.",
	Buckets:   DefaultBuckets,
}, []string{"path"})
