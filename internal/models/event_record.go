package models

import "time"

// EventTypePullRequest is the event type carrying pull request activity.
// PR interval metrics are computed over events of this type.
const EventTypePullRequest = "PullRequestEvent"

// ActionOpened marks the PR sub-type used by the interval metrics.
const ActionOpened = "opened"

// EventRecord is the canonical stored representation of one upstream event.
// CreatedAt is assigned by upstream and is the ordering key for every
// time-based metric; IngestedAt is assigned at persistence time.
type EventRecord struct {
	EventID    string    `ch:"event_id" json:"eventId"`
	EventType  string    `ch:"event_type" json:"eventType"`
	RepoName   string    `ch:"repo_name" json:"repoName"`
	RepoID     int64     `ch:"repo_id" json:"repoId"`
	CreatedAt  time.Time `ch:"created_at" json:"createdAt"`
	Action     string    `ch:"action" json:"action,omitempty"`
	IngestedAt time.Time `ch:"ingested_at" json:"ingestedAt"`
}
