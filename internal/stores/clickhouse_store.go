package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github-stats/internal/models"
	"github-stats/internal/shared/configs"
	"github-stats/internal/shared/loggers"
)

const clickHouseDialTimeout = 5 * time.Second

// clickHouseStore is the production backend. Every operation acquires its
// own connection and releases it on every exit path; no connection is held
// across unrelated operations. Window cutoffs use the server's now() so the
// window stays consistent under concurrent inserts.
type clickHouseStore struct {
	opts          *clickhouse.Options
	dedupFailOpen bool
	logger        loggers.Logger

	// open is indirected for tests
	open func(opts *clickhouse.Options) (driver.Conn, error)
}

// NewClickHouseStore validates connectivity and bootstraps the schema before
// returning, failing fast on an unreachable server.
func NewClickHouseStore(cfg configs.StorageConfig, logger loggers.Logger) (EventStore, error) {
	ch := cfg.ClickHouse
	if ch.Host == "" || ch.Port == 0 || ch.Database == "" {
		return nil, fmt.Errorf("incomplete clickhouse config: host, port and database are required")
	}

	store := &clickHouseStore{
		opts: &clickhouse.Options{
			Addr: []string{fmt.Sprintf("%s:%d", ch.Host, ch.Port)},
			Auth: clickhouse.Auth{
				Database: ch.Database,
				Username: ch.Username,
				Password: ch.Password,
			},
			DialTimeout: clickHouseDialTimeout,
		},
		dedupFailOpen: cfg.DedupFailOpen,
		logger:        logger.With().Str(loggers.FieldBackend, BackendClickHouse).Logger(),
		open:          clickhouse.Open,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize clickhouse schema: %w", err)
	}

	store.logger.Info().Msgf("connected to clickhouse at %s:%d (database=%s)", ch.Host, ch.Port, ch.Database)
	return store, nil
}

// withConn opens a scoped connection, runs fn and guarantees the close.
func (s *clickHouseStore) withConn(ctx context.Context, fn func(conn driver.Conn) error) error {
	conn, err := s.open(s.opts)
	if err != nil {
		return errStorageUnavailable(err)
	}
	defer conn.Close()

	if err := conn.Ping(ctx); err != nil {
		return errStorageUnavailable(err)
	}
	return fn(conn)
}

func (s *clickHouseStore) initSchema(ctx context.Context) error {
	return s.withConn(ctx, func(conn driver.Conn) error {
		for _, ddl := range clickHouseSchema {
			if err := conn.Exec(ctx, ddl); err != nil {
				return errQueryFailed(err)
			}
		}
		return nil
	})
}

func (s *clickHouseStore) Insert(ctx context.Context, raw []models.RawEvent) (int, error) {
	records := prepareBatch(s.logger, raw)
	if len(records) == 0 {
		return 0, nil
	}

	inserted := 0
	err := s.withConn(ctx, func(conn driver.Conn) error {
		fresh, err := s.dropPersistedIDs(ctx, conn, records)
		if err != nil {
			return err
		}
		if len(fresh) == 0 {
			return nil
		}

		batch, err := conn.PrepareBatch(ctx, "INSERT INTO events")
		if err != nil {
			return errQueryFailed(err)
		}
		ingestedAt := time.Now().UTC()
		for _, record := range fresh {
			err := batch.Append(
				record.EventID,
				record.EventType,
				record.RepoName,
				record.RepoID,
				record.CreatedAt,
				record.Action,
				ingestedAt,
			)
			if err != nil {
				return errQueryFailed(err)
			}
		}
		if err := batch.Send(); err != nil {
			return errQueryFailed(err)
		}
		inserted = len(fresh)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if skipped := len(records) - inserted; skipped > 0 {
		metricDuplicatesSkippedTotal.WithLabelValues(BackendClickHouse).Add(float64(skipped))
	}
	if inserted > 0 {
		metricEventsInsertedTotal.WithLabelValues(BackendClickHouse).Add(float64(inserted))
		s.logger.Debug().Msgf("inserted %d events (%d duplicates skipped)", inserted, len(records)-inserted)
	}
	return inserted, nil
}

// dropPersistedIDs removes records whose ids already exist in storage. When
// the existence check itself fails and dedup_fail_open is set, the whole
// collapsed batch is treated as new: a possible duplicate is preferable to a
// lost batch, and the fallback is logged and counted so it never happens
// silently.
func (s *clickHouseStore) dropPersistedIDs(ctx context.Context, conn driver.Conn, records []models.EventRecord) ([]models.EventRecord, error) {
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.EventID)
	}

	rows, err := conn.Query(ctx, "SELECT DISTINCT event_id FROM events WHERE event_id IN (?)", ids)
	if err != nil {
		if !s.dedupFailOpen {
			return nil, errQueryFailed(err)
		}
		s.logger.Warn().Err(err).Msg("duplicate check failed, inserting batch unconditionally")
		metricDedupFallbackTotal.WithLabelValues(BackendClickHouse).Inc()
		return records, nil
	}
	defer rows.Close()

	persisted := make(map[string]struct{}, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errQueryFailed(err)
		}
		persisted[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, errQueryFailed(err)
	}

	fresh := make([]models.EventRecord, 0, len(records))
	for _, record := range records {
		if _, dup := persisted[record.EventID]; !dup {
			fresh = append(fresh, record)
		}
	}
	return fresh, nil
}

func (s *clickHouseStore) CountByWindow(ctx context.Context, offsetMinutes int) (*EventWindowCounts, error) {
	if offsetMinutes < 0 {
		return nil, errInvalidArgument("offset minutes must be non-negative")
	}

	counts := &EventWindowCounts{
		OffsetMinutes: offsetMinutes,
		ByType:        make(map[string]int),
	}
	err := s.withConn(ctx, func(conn driver.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT event_type, count() AS c
			FROM events
			WHERE created_at >= now() - toIntervalMinute(?)
			GROUP BY event_type`, offsetMinutes)
		if err != nil {
			return errQueryFailed(err)
		}
		defer rows.Close()

		for rows.Next() {
			var eventType string
			var count uint64
			if err := rows.Scan(&eventType, &count); err != nil {
				return errQueryFailed(err)
			}
			counts.ByType[eventType] = int(count)
			counts.Total += int(count)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// PullRequestsForRepo restricts to action='opened' so the scan path counts
// exactly what the rollup counts.
func (s *clickHouseStore) PullRequestsForRepo(ctx context.Context, repoName string) ([]models.EventRecord, error) {
	var prs []models.EventRecord
	err := s.withConn(ctx, func(conn driver.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT event_id, event_type, repo_name, repo_id, created_at, action, ingested_at
			FROM events
			WHERE event_type = 'PullRequestEvent' AND action = 'opened' AND repo_name = ?
			ORDER BY created_at`, repoName)
		if err != nil {
			return errQueryFailed(err)
		}
		defer rows.Close()

		for rows.Next() {
			var record models.EventRecord
			err := rows.Scan(
				&record.EventID,
				&record.EventType,
				&record.RepoName,
				&record.RepoID,
				&record.CreatedAt,
				&record.Action,
				&record.IngestedAt,
			)
			if err != nil {
				return errQueryFailed(err)
			}
			prs = append(prs, record)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return prs, nil
}

// AveragePRInterval tries the rollup first: (latest-earliest)/(count-1) from
// the maintained per-repo aggregate. Any failure there, including an absent
// rollup row, falls back to the raw scan over PullRequestsForRepo.
func (s *clickHouseStore) AveragePRInterval(ctx context.Context, repoName string) (float64, error) {
	avg, err := s.averageFromRollup(ctx, repoName)
	if err == nil {
		return avg, nil
	}
	s.logger.Debug().Err(err).Str(loggers.FieldRepo, repoName).Msg("rollup unavailable, falling back to raw scan")

	prs, err := s.PullRequestsForRepo(ctx, repoName)
	if err != nil {
		return 0, err
	}
	return averageInterval(prs), nil
}

func (s *clickHouseStore) averageFromRollup(ctx context.Context, repoName string) (float64, error) {
	var (
		count    uint64
		earliest time.Time
		latest   time.Time
	)
	err := s.withConn(ctx, func(conn driver.Conn) error {
		row := conn.QueryRow(ctx, `
			SELECT
				countMerge(pr_count) AS c,
				minMerge(first_pr)   AS earliest,
				maxMerge(last_pr)    AS latest
			FROM pr_opened_rollup
			WHERE repo_name = ?
			GROUP BY repo_name`, repoName)
		return row.Scan(&count, &earliest, &latest)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// no rollup row: either no PRs at all or the view is lagging;
			// the raw scan settles it
			return 0, fmt.Errorf("no rollup row for repo %q", repoName)
		}
		return 0, err
	}
	if count < 2 {
		return 0.0, nil
	}
	return latest.Sub(earliest).Seconds() / float64(count-1), nil
}

func (s *clickHouseStore) CountByRepo(ctx context.Context, repoName string) (int, error) {
	var count uint64
	err := s.withConn(ctx, func(conn driver.Conn) error {
		row := conn.QueryRow(ctx, "SELECT count() FROM events WHERE repo_name = ?", repoName)
		if err := row.Scan(&count); err != nil {
			return errQueryFailed(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *clickHouseStore) EventsForRepo(ctx context.Context, repoName string) ([]EventSummary, error) {
	var summaries []EventSummary
	err := s.withConn(ctx, func(conn driver.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT event_id, action, event_type
			FROM events
			WHERE repo_name = ?
			ORDER BY created_at DESC`, repoName)
		if err != nil {
			return errQueryFailed(err)
		}
		defer rows.Close()

		for rows.Next() {
			var summary EventSummary
			if err := rows.Scan(&summary.EventID, &summary.Action, &summary.EventType); err != nil {
				return errQueryFailed(err)
			}
			summaries = append(summaries, summary)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *clickHouseStore) TopRepos(ctx context.Context, limit int) ([]RepoEventCount, error) {
	if limit <= 0 {
		return nil, errInvalidArgument("limit must be positive")
	}

	var top []RepoEventCount
	err := s.withConn(ctx, func(conn driver.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT repo_name, count() AS c
			FROM events
			GROUP BY repo_name
			ORDER BY c DESC
			LIMIT ?`, limit)
		if err != nil {
			return errQueryFailed(err)
		}
		defer rows.Close()

		for rows.Next() {
			var entry RepoEventCount
			var count uint64
			if err := rows.Scan(&entry.RepoName, &count); err != nil {
				return errQueryFailed(err)
			}
			entry.Count = int(count)
			top = append(top, entry)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return top, nil
}

// Health probes connectivity plus two scalar aggregates. It never returns an
// error; any failure degrades to IsConnected=false with zeroed counts.
func (s *clickHouseStore) Health(ctx context.Context) *StoreHealth {
	health := &StoreHealth{BackendType: BackendClickHouse}

	err := s.withConn(ctx, func(conn driver.Conn) error {
		if err := conn.Exec(ctx, "SELECT 1"); err != nil {
			return err
		}

		var total uint64
		if err := conn.QueryRow(ctx, "SELECT count() FROM events").Scan(&total); err != nil {
			return err
		}
		health.TotalEvents = int(total)

		if total > 0 {
			var last time.Time
			if err := conn.QueryRow(ctx, "SELECT max(created_at) FROM events").Scan(&last); err != nil {
				return err
			}
			health.LastEventTS = last
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("health probe failed")
		return &StoreHealth{BackendType: BackendClickHouse}
	}

	health.IsConnected = true
	return health
}
