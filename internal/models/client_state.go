package models

import "time"

const defaultPollIntervalSec = 60

// ClientState is the polling client's durable scheduling state. It is
// mutated by exactly one polling actor and written back to stable storage
// after every poll attempt.
type ClientState struct {
	ETag            string    `json:"etag,omitempty"`
	LastModified    string    `json:"lastModified,omitempty"`
	LastPoll        time.Time `json:"lastPoll,omitempty"`
	NextPoll        time.Time `json:"nextPoll,omitempty"`
	PollIntervalSec int       `json:"pollIntervalSec"`
}

// NewClientState returns the state used before any poll has happened.
func NewClientState() *ClientState {
	return &ClientState{PollIntervalSec: defaultPollIntervalSec}
}

// PollInterval returns the current poll interval, falling back to the
// default when the stored value is missing or nonsensical.
func (s *ClientState) PollInterval() time.Duration {
	if s.PollIntervalSec <= 0 {
		return defaultPollIntervalSec * time.Second
	}
	return time.Duration(s.PollIntervalSec) * time.Second
}
