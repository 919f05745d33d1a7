package backfill

import (
	"github-stats/internal/shared/metrics"
)

var (
	metricFilesReplayedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubBackfill,
			Name:      "files_replayed_total",
		},
	)

	metricEventsReplayedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubBackfill,
			Name:      "events_replayed_total",
		},
	)
)
