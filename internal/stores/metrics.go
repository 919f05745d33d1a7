package stores

import (
	"github-stats/internal/shared/metrics"
)

var (
	metricEventsInsertedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStorage,
			Name:      "events_inserted_total",
		},
		[]string{"backend"},
	)

	metricDuplicatesSkippedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStorage,
			Name:      "duplicates_skipped_total",
		},
		[]string{"backend"},
	)

	// Incremented whenever the persisted-id existence check fails and the
	// insert proceeds unconditionally. A nonzero value means possible
	// duplicates were traded for availability.
	metricDedupFallbackTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStorage,
			Name:      "dedup_fallback_total",
		},
		[]string{"backend"},
	)

	metricMalformedDroppedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStorage,
			Name:      "malformed_dropped_total",
		},
	)
)
