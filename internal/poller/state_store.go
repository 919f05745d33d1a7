package poller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github-stats/internal/models"
	"github-stats/internal/shared/filestorages"
)

// StateStore persists ClientState between restarts. Overwrite-on-write,
// last-writer-wins; the poller is the only writer.
//
//go:generate mockgen -source=state_store.go -destination=./mocks/state_store_mock.go -package=mocks
type StateStore interface {
	Load(ctx context.Context) (*models.ClientState, error)
	Save(ctx context.Context, state *models.ClientState) error
}

type stateStore struct {
	fileStorage filestorages.FileStorage
	key         string
}

func NewStateStore(fileStorage filestorages.FileStorage, key string) StateStore {
	return &stateStore{fileStorage: fileStorage, key: key}
}

// Load returns the persisted state, or fresh defaults when none exists yet.
func (s *stateStore) Load(ctx context.Context) (*models.ClientState, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return models.NewClientState(), nil
		}
		return nil, fmt.Errorf("failed to load client state: %w", err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read client state: %w", err)
	}

	var state models.ClientState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal client state: %w", err)
	}
	return &state, nil
}

func (s *stateStore) Save(ctx context.Context, state *models.ClientState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal client state: %w", err)
	}

	_, err = s.fileStorage.Put(ctx, s.key, bytes.NewReader(data), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to save client state: %w", err)
	}
	return nil
}
