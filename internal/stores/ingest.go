package stores

import (
	"errors"

	"github-stats/internal/models"
	"github-stats/internal/shared/loggers"
)

// allowedEventTypes is the fixed allowlist; events of any other type are
// discarded before persistence and never reach a backend.
var allowedEventTypes = map[string]struct{}{
	"WatchEvent":                {},
	models.EventTypePullRequest: {},
	"IssuesEvent":               {},
}

// prepareBatch runs the shared ingest pipeline: allowlist filter, malformed
// drop (warning, never aborts siblings), then an id-keyed collapse where the
// last candidate wins but keeps the position of the first occurrence, so the
// output order is deterministic for a given input order.
func prepareBatch(logger loggers.Logger, raw []models.RawEvent) []models.EventRecord {
	records := make([]models.EventRecord, 0, len(raw))
	indexByID := make(map[string]int, len(raw))

	for _, rawEvent := range raw {
		if _, ok := allowedEventTypes[rawEvent.Type]; !ok {
			continue
		}

		record, err := rawEvent.ToRecord()
		if err != nil {
			if errors.Is(err, models.ErrMalformedEvent) {
				logger.Warn().Err(err).Msg("dropping malformed event")
				metricMalformedDroppedTotal.Inc()
				continue
			}
			logger.Warn().Err(err).Msg("dropping unconvertible event")
			continue
		}

		if i, seen := indexByID[record.EventID]; seen {
			records[i] = record
			continue
		}
		indexByID[record.EventID] = len(records)
		records = append(records, record)
	}

	return records
}
