// Package metrics exposes Prometheus counters for the ordering engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reorderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sortable",
		Subsystem: "reorder",
		Name:      "requests_total",
		Help:      "Total number of apply-order calls broken down by result.",
	}, []string{"result"})

	positionWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sortable",
		Subsystem: "position",
		Name:      "writes_total",
		Help:      "Total number of position column writes broken down by operation.",
	}, []string{"operation"})

	insertPositions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sortable",
		Subsystem: "insert",
		Name:      "positions_assigned_total",
		Help:      "Total number of initial positions assigned broken down by locking mode.",
	}, []string{"mode"})
)

// RecordReorder counts one apply-order call. A nil error counts as "ok".
func RecordReorder(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	reorderRequests.WithLabelValues(result).Inc()
}

// RecordPositionWrites adds n position writes performed by operation
// ("reorder", "repack", "reset").
func RecordPositionWrites(operation string, n int) {
	if n <= 0 {
		return
	}
	if operation == "" {
		operation = "other"
	}
	positionWrites.WithLabelValues(operation).Add(float64(n))
}

// RecordInsertPosition counts one initial position assignment.
func RecordInsertPosition(locked bool) {
	mode := "legacy"
	if locked {
		mode = "locked"
	}
	insertPositions.WithLabelValues(mode).Inc()
}
