package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawEvent() RawEvent {
	event := RawEvent{
		ID:        "22249084964",
		Type:      EventTypePullRequest,
		CreatedAt: "2026-08-29T10:15:30Z",
	}
	event.Repo.ID = 155271867
	event.Repo.Name = "golang/go"
	event.Payload.Action = ActionOpened
	return event
}

func TestRawEvent_ToRecord_Success(t *testing.T) {
	t.Parallel()

	record, err := validRawEvent().ToRecord()
	require.NoError(t, err)

	assert.Equal(t, "22249084964", record.EventID)
	assert.Equal(t, EventTypePullRequest, record.EventType)
	assert.Equal(t, "golang/go", record.RepoName)
	assert.Equal(t, int64(155271867), record.RepoID)
	assert.Equal(t, ActionOpened, record.Action)
	assert.Equal(t, time.Date(2026, 8, 29, 10, 15, 30, 0, time.UTC), record.CreatedAt)
	assert.True(t, record.IngestedAt.IsZero(), "IngestedAt is assigned at persistence time")
}

func TestRawEvent_ToRecord_NormalizesToUTC(t *testing.T) {
	t.Parallel()

	event := validRawEvent()
	event.CreatedAt = "2026-08-29T12:15:30+02:00"

	record, err := event.ToRecord()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 29, 10, 15, 30, 0, time.UTC), record.CreatedAt)
	assert.Equal(t, time.UTC, record.CreatedAt.Location())
}

func TestRawEvent_ToRecord_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*RawEvent)
	}{
		{name: "missing id", mutate: func(e *RawEvent) { e.ID = "" }},
		{name: "missing type", mutate: func(e *RawEvent) { e.Type = "" }},
		{name: "missing repo name", mutate: func(e *RawEvent) { e.Repo.Name = "" }},
		{name: "missing created_at", mutate: func(e *RawEvent) { e.CreatedAt = "" }},
		{name: "invalid created_at", mutate: func(e *RawEvent) { e.CreatedAt = "yesterday" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := validRawEvent()
			tt.mutate(&event)

			_, err := event.ToRecord()
			assert.ErrorIs(t, err, ErrMalformedEvent)
		})
	}
}

func TestRawEvent_ToRecord_OptionalFieldsDegrade(t *testing.T) {
	t.Parallel()

	event := validRawEvent()
	event.Repo.ID = 0
	event.Payload.Action = ""

	record, err := event.ToRecord()
	require.NoError(t, err)
	assert.Zero(t, record.RepoID)
	assert.Empty(t, record.Action)
}

func TestRawEvent_DecodesUpstreamShape(t *testing.T) {
	t.Parallel()

	payload := []byte(`[{
		"id": "22249084964",
		"type": "WatchEvent",
		"repo": {"id": 155271867, "name": "octocat/hello-world"},
		"payload": {"action": "started"},
		"created_at": "2026-08-29T10:15:30Z",
		"public": true,
		"actor": {"id": 1, "login": "octocat"}
	}]`)

	var events []RawEvent
	require.NoError(t, json.Unmarshal(payload, &events))
	require.Len(t, events, 1)

	assert.Equal(t, "22249084964", events[0].ID)
	assert.Equal(t, "WatchEvent", events[0].Type)
	assert.Equal(t, "octocat/hello-world", events[0].Repo.Name)
	assert.Equal(t, "started", events[0].Payload.Action)
}
