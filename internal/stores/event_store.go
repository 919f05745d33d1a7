package stores

import (
	"context"
	"fmt"
	"time"

	"github-stats/internal/models"
	"github-stats/internal/shared/configs"
	"github-stats/internal/shared/loggers"
)

const (
	BackendMemory     = "memory"
	BackendClickHouse = "clickhouse"
)

// EventWindowCounts holds per-type event counts for a trailing time window.
type EventWindowCounts struct {
	OffsetMinutes int            `json:"offsetMinutes"`
	ByType        map[string]int `json:"eventCounts"`
	Total         int            `json:"totalEvents"`
}

// EventSummary is the compact per-event row returned by EventsForRepo.
type EventSummary struct {
	EventID   string `json:"eventId"`
	Action    string `json:"action"`
	EventType string `json:"eventType"`
}

// RepoEventCount pairs a repository with its stored event count.
type RepoEventCount struct {
	RepoName string `json:"repoName"`
	Count    int    `json:"eventCount"`
}

// StoreHealth reports backend connectivity and coarse dataset stats.
// Probe failures yield IsConnected=false with zeroed counts, never an error.
type StoreHealth struct {
	IsConnected bool      `json:"isConnected"`
	BackendType string    `json:"backendType"`
	TotalEvents int       `json:"totalEvents"`
	LastEventTS time.Time `json:"lastEventTs,omitempty"`
}

// EventStore is the capability interface over event persistence. Both
// backends implement the same contract; callers hold only this type.
//
//go:generate mockgen -source=event_store.go -destination=./mocks/event_store_mock.go -package=mocks
type EventStore interface {
	// Insert filters raw events to the allowlisted types, drops malformed
	// ones with a warning, collapses the batch by event id, deduplicates
	// against persisted storage and persists the remainder. It returns the
	// count of newly persisted records; duplicates are never an error.
	Insert(ctx context.Context, raw []models.RawEvent) (int, error)

	// CountByWindow counts events with created_at inside the trailing window
	// of offsetMinutes, grouped by event type. offsetMinutes must be >= 0.
	CountByWindow(ctx context.Context, offsetMinutes int) (*EventWindowCounts, error)

	// PullRequestsForRepo returns the repo's pull request events ascending
	// by created_at.
	PullRequestsForRepo(ctx context.Context, repoName string) ([]models.EventRecord, error)

	// AveragePRInterval returns the mean gap in seconds between consecutive
	// pull request events for the repo, 0.0 when fewer than two exist.
	AveragePRInterval(ctx context.Context, repoName string) (float64, error)

	// CountByRepo returns the total stored event count for the repo.
	CountByRepo(ctx context.Context, repoName string) (int, error)

	// EventsForRepo returns {event_id, action, event_type} rows for the repo
	// ordered by created_at descending.
	EventsForRepo(ctx context.Context, repoName string) ([]EventSummary, error)

	// TopRepos returns up to limit repositories ordered by event count
	// descending.
	TopRepos(ctx context.Context, limit int) ([]RepoEventCount, error)

	// Health never returns an error; failures degrade the payload.
	Health(ctx context.Context) *StoreHealth
}

// New builds the EventStore selected by cfg.Backend. The instance is
// constructed once at startup and passed explicitly to its consumers.
func New(cfg configs.StorageConfig, logger loggers.Logger) (EventStore, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStore(logger), nil
	case BackendClickHouse:
		return NewClickHouseStore(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}
