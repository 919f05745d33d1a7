package stores

import (
	"context"
	"sort"
	"sync"
	"time"

	"github-stats/internal/models"
	"github-stats/internal/shared/loggers"
)

// memoryStore is the reference backend: a single mutex guards an append-only
// log and every query is a linear scan. Contention stays low (one writer,
// few readers) so no finer-grained locking is warranted.
type memoryStore struct {
	mu     sync.Mutex
	events []models.EventRecord
	seen   map[string]struct{}
	logger loggers.Logger
}

func NewMemoryStore(logger loggers.Logger) EventStore {
	return &memoryStore{
		seen:   make(map[string]struct{}),
		logger: logger.With().Str(loggers.FieldBackend, BackendMemory).Logger(),
	}
}

func (s *memoryStore) Insert(_ context.Context, raw []models.RawEvent) (int, error) {
	records := prepareBatch(s.logger, raw)

	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := 0
	for _, record := range records {
		if _, dup := s.seen[record.EventID]; dup {
			metricDuplicatesSkippedTotal.WithLabelValues(BackendMemory).Inc()
			continue
		}
		record.IngestedAt = time.Now().UTC()
		s.events = append(s.events, record)
		s.seen[record.EventID] = struct{}{}
		inserted++
	}

	if inserted > 0 {
		metricEventsInsertedTotal.WithLabelValues(BackendMemory).Add(float64(inserted))
		s.logger.Debug().Msgf("stored %d new events, total stored: %d", inserted, len(s.events))
	}
	return inserted, nil
}

func (s *memoryStore) CountByWindow(_ context.Context, offsetMinutes int) (*EventWindowCounts, error) {
	if offsetMinutes < 0 {
		return nil, errInvalidArgument("offset minutes must be non-negative")
	}
	cutoff := time.Now().UTC().Add(-time.Duration(offsetMinutes) * time.Minute)

	s.mu.Lock()
	defer s.mu.Unlock()

	counts := &EventWindowCounts{
		OffsetMinutes: offsetMinutes,
		ByType:        make(map[string]int),
	}
	for _, event := range s.events {
		if !event.CreatedAt.Before(cutoff) {
			counts.ByType[event.EventType]++
			counts.Total++
		}
	}
	return counts, nil
}

func (s *memoryStore) PullRequestsForRepo(_ context.Context, repoName string) ([]models.EventRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prs []models.EventRecord
	for _, event := range s.events {
		if event.EventType == models.EventTypePullRequest && event.RepoName == repoName {
			prs = append(prs, event)
		}
	}
	sort.Slice(prs, func(i, j int) bool {
		return prs[i].CreatedAt.Before(prs[j].CreatedAt)
	})
	return prs, nil
}

func (s *memoryStore) AveragePRInterval(ctx context.Context, repoName string) (float64, error) {
	prs, err := s.PullRequestsForRepo(ctx, repoName)
	if err != nil {
		return 0, err
	}
	return averageInterval(prs), nil
}

func (s *memoryStore) CountByRepo(_ context.Context, repoName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, event := range s.events {
		if event.RepoName == repoName {
			count++
		}
	}
	return count, nil
}

// EventsForRepo is served only by the clickhouse backend; callers must route
// the query there.
func (s *memoryStore) EventsForRepo(context.Context, string) ([]EventSummary, error) {
	return nil, errNotImplemented("events_for_repo")
}

// TopRepos is served only by the clickhouse backend.
func (s *memoryStore) TopRepos(context.Context, int) ([]RepoEventCount, error) {
	return nil, errNotImplemented("top_repos")
}

func (s *memoryStore) Health(context.Context) *StoreHealth {
	s.mu.Lock()
	defer s.mu.Unlock()

	health := &StoreHealth{
		IsConnected: true,
		BackendType: BackendMemory,
		TotalEvents: len(s.events),
	}
	for _, event := range s.events {
		if event.CreatedAt.After(health.LastEventTS) {
			health.LastEventTS = event.CreatedAt
		}
	}
	return health
}

// averageInterval computes the mean of consecutive gaps between the ordered
// timestamps, in seconds. Fewer than two events yield 0.0.
func averageInterval(prs []models.EventRecord) float64 {
	if len(prs) < 2 {
		return 0.0
	}
	total := 0.0
	for i := 1; i < len(prs); i++ {
		total += prs[i].CreatedAt.Sub(prs[i-1].CreatedAt).Seconds()
	}
	return total / float64(len(prs)-1)
}
