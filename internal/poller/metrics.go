package poller

import (
	"github-stats/internal/shared/metrics"
)

const (
	outcomeNoChange  = "no_change"
	outcomePersisted = "persisted"
	outcomeError     = "error"
)

var (
	metricPollCyclesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPoller,
			Name:      "cycles_total",
		},
		[]string{"outcome"},
	)

	metricEventsFetchedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPoller,
			Name:      "events_fetched_total",
		},
	)

	metricRateLimitSleepsTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPoller,
			Name:      "rate_limit_sleeps_total",
		},
	)
)
