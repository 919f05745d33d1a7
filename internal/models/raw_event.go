package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedEvent marks a raw event missing mandatory fields. Callers drop
// the offending event with a warning and continue with its siblings.
var ErrMalformedEvent = errors.New("malformed event")

// RawEvent is the wire shape of one event from the upstream feed, limited to
// the fields this service consumes.
type RawEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Repo struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"repo"`
	Payload struct {
		Action string `json:"action"`
	} `json:"payload"`
	CreatedAt string `json:"created_at"`
}

// ToRecord converts a raw upstream event into an EventRecord. Mandatory
// fields (id, type, repo identity, created_at) fail with ErrMalformedEvent;
// optional fields degrade to zero values. IngestedAt is left for the store to
// assign. Performs no I/O.
func (r RawEvent) ToRecord() (EventRecord, error) {
	if r.ID == "" {
		return EventRecord{}, fmt.Errorf("%w: missing id", ErrMalformedEvent)
	}
	if r.Type == "" {
		return EventRecord{}, fmt.Errorf("%w: missing type (id=%s)", ErrMalformedEvent, r.ID)
	}
	if r.Repo.Name == "" {
		return EventRecord{}, fmt.Errorf("%w: missing repo name (id=%s)", ErrMalformedEvent, r.ID)
	}
	if r.CreatedAt == "" {
		return EventRecord{}, fmt.Errorf("%w: missing created_at (id=%s)", ErrMalformedEvent, r.ID)
	}

	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return EventRecord{}, fmt.Errorf("%w: invalid created_at %q (id=%s)", ErrMalformedEvent, r.CreatedAt, r.ID)
	}

	return EventRecord{
		EventID:   r.ID,
		EventType: r.Type,
		RepoName:  r.Repo.Name,
		RepoID:    r.Repo.ID,
		CreatedAt: createdAt.UTC(),
		Action:    r.Payload.Action,
	}, nil
}
