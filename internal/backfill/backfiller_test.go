package backfill_test

import (
	"context"
	"testing"

	"github-stats/internal/backfill"
	"github-stats/internal/shared/loggers"
	storemocks "github-stats/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const archivedPayload = `[
	{"id":"1","type":"WatchEvent","repo":{"id":7,"name":"a/b"},"created_at":"2026-08-29T10:00:00Z"},
	{"id":"2","type":"PullRequestEvent","repo":{"id":7,"name":"a/b"},"payload":{"action":"opened"},"created_at":"2026-08-29T10:01:00Z"}
]`

func newTestBackfiller(t *testing.T, archive *storemocks.MockRawPayloadStore, eventStore *storemocks.MockEventStore) *backfill.Backfiller {
	t.Helper()
	logger, err := loggers.New("info")
	require.NoError(t, err)
	return backfill.New(archive, eventStore, logger)
}

func TestBackfiller_Run(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	archive := storemocks.NewMockRawPayloadStore(ctrl)
	eventStore := storemocks.NewMockEventStore(ctrl)

	keys := []string{
		"archive/2026-08-29T10-00-00.000000000.json",
		"archive/2026-08-29T10-01-00.000000000.json",
	}
	archive.EXPECT().List(gomock.Any()).Return(keys, nil)
	archive.EXPECT().Get(gomock.Any(), keys[0]).Return([]byte(archivedPayload), nil)
	archive.EXPECT().Get(gomock.Any(), keys[1]).Return([]byte(archivedPayload), nil)

	gomock.InOrder(
		eventStore.EXPECT().Insert(gomock.Any(), gomock.Len(2)).Return(2, nil),
		// second file replays the same events, the store dedups them away
		eventStore.EXPECT().Insert(gomock.Any(), gomock.Len(2)).Return(0, nil),
	)

	stats, err := newTestBackfiller(t, archive, eventStore).Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FilesProcessed)
	assert.Equal(t, 4, stats.EventsFound)
	assert.Equal(t, 2, stats.EventsInserted)
	assert.Equal(t, 0, stats.Errors)
}

func TestBackfiller_Run_DryRun(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	archive := storemocks.NewMockRawPayloadStore(ctrl)
	eventStore := storemocks.NewMockEventStore(ctrl)

	key := "archive/2026-08-29T10-00-00.000000000.json"
	archive.EXPECT().List(gomock.Any()).Return([]string{key}, nil)
	archive.EXPECT().Get(gomock.Any(), key).Return([]byte(archivedPayload), nil)
	// no Insert call in dry-run mode

	stats, err := newTestBackfiller(t, archive, eventStore).Run(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesProcessed)
	assert.Equal(t, 2, stats.EventsFound)
	assert.Equal(t, 0, stats.EventsInserted)
}

func TestBackfiller_Run_EmptyArchive(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	archive := storemocks.NewMockRawPayloadStore(ctrl)
	eventStore := storemocks.NewMockEventStore(ctrl)

	archive.EXPECT().List(gomock.Any()).Return(nil, nil)

	stats, err := newTestBackfiller(t, archive, eventStore).Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, &backfill.Stats{}, stats)
}

func TestBackfiller_Run_BadFileSkipped(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	archive := storemocks.NewMockRawPayloadStore(ctrl)
	eventStore := storemocks.NewMockEventStore(ctrl)

	keys := []string{
		"archive/2026-08-29T10-00-00.000000000.json",
		"archive/2026-08-29T10-01-00.000000000.json",
	}
	archive.EXPECT().List(gomock.Any()).Return(keys, nil)
	archive.EXPECT().Get(gomock.Any(), keys[0]).Return([]byte("{corrupt"), nil)
	archive.EXPECT().Get(gomock.Any(), keys[1]).Return([]byte(archivedPayload), nil)
	eventStore.EXPECT().Insert(gomock.Any(), gomock.Len(2)).Return(2, nil)

	stats, err := newTestBackfiller(t, archive, eventStore).Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesProcessed)
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 2, stats.EventsInserted)
}

func TestBackfiller_Run_ListFailureIsFatal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	archive := storemocks.NewMockRawPayloadStore(ctrl)
	eventStore := storemocks.NewMockEventStore(ctrl)

	archive.EXPECT().List(gomock.Any()).Return(nil, assert.AnError)

	_, err := newTestBackfiller(t, archive, eventStore).Run(context.Background(), false)
	assert.ErrorIs(t, err, assert.AnError)
}
