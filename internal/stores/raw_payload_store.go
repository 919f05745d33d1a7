package stores

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github-stats/internal/shared/filestorages"
)

var (
	ErrPayloadAlreadyArchived = errors.New("payload already archived")
)

// archiveTimeLayout names archive files by fetch timestamp so a lexical sort
// is a chronological sort. The fixed-width nanosecond suffix keeps fetches
// inside the same second from mapping to the same key.
const archiveTimeLayout = "2006-01-02T15-04-05.000000000"

// RawPayloadStore archives the verbatim upstream payload of every successful
// fetch, one file per fetch, for replay and audit. Put is create-if-absent:
// two fetches mapping to the same timestamp cannot clobber each other.
//
//go:generate mockgen -source=raw_payload_store.go -destination=./mocks/raw_payload_store_mock.go -package=mocks
type RawPayloadStore interface {
	Put(ctx context.Context, fetchedAt time.Time, payload []byte) (string, error)
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

type rawPayloadStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewRawPayloadStore(fileStorage filestorages.FileStorage, dir string) RawPayloadStore {
	return &rawPayloadStore{fileStorage: fileStorage, dir: dir}
}

func (s *rawPayloadStore) Put(ctx context.Context, fetchedAt time.Time, payload []byte) (string, error) {
	key := fmt.Sprintf("%s/%s.json", s.dir, fetchedAt.UTC().Format(archiveTimeLayout))

	_, err := s.fileStorage.Put(ctx, key, bytes.NewReader(payload), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return key, ErrPayloadAlreadyArchived
		}
		return "", fmt.Errorf("failed to archive payload: %w", err)
	}
	return key, nil
}

// List returns archived payload keys in fetch order.
func (s *rawPayloadStore) List(ctx context.Context) ([]string, error) {
	keys, err := s.fileStorage.List(ctx, s.dir)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list archived payloads: %w", err)
	}
	return keys, nil
}

func (s *rawPayloadStore) Get(ctx context.Context, key string) ([]byte, error) {
	readCloser, err := s.fileStorage.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get archived payload %q: %w", key, err)
	}
	defer readCloser.Close()

	payload, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read archived payload %q: %w", key, err)
	}
	return payload, nil
}
