package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github-stats/internal/models"
	"github-stats/internal/shared/loggers"
	"github-stats/internal/stores"
	storemocks "github-stats/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T, eventStore stores.EventStore) http.Handler {
	t.Helper()
	logger, err := loggers.New("info")
	require.NoError(t, err)
	return NewRouter(eventStore, logger)
}

func TestRouter_EventCounts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEventStore := storemocks.NewMockEventStore(ctrl)
	mockEventStore.EXPECT().
		CountByWindow(gomock.Any(), 10).
		Return(&stores.EventWindowCounts{
			OffsetMinutes: 10,
			ByType:        map[string]int{"WatchEvent": 3, "PullRequestEvent": 1},
			Total:         4,
		}, nil)

	router := newTestRouter(t, mockEventStore)

	req := httptest.NewRequest(http.MethodGet, "/metrics/events?offset=10", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var counts stores.EventWindowCounts
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &counts))
	assert.Equal(t, 4, counts.Total)
	assert.Equal(t, 3, counts.ByType["WatchEvent"])
}

func TestRouter_EventCounts_BadOffset(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEventStore := storemocks.NewMockEventStore(ctrl)
	router := newTestRouter(t, mockEventStore)

	tests := []struct {
		name string
		url  string
	}{
		{name: "missing offset", url: "/metrics/events"},
		{name: "non-integer offset", url: "/metrics/events?offset=soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code)

			var errorResponse ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
			assert.Equal(t, codeInvalidQueryParam, errorResponse.ErrorCode)
		})
	}
}

func TestRouter_PRAverage(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	prs := []models.EventRecord{
		{EventID: "1", EventType: models.EventTypePullRequest, RepoName: "golang/go", CreatedAt: base},
		{EventID: "2", EventType: models.EventTypePullRequest, RepoName: "golang/go", CreatedAt: base.Add(15 * time.Second)},
	}

	mockEventStore := storemocks.NewMockEventStore(ctrl)
	mockEventStore.EXPECT().AveragePRInterval(gomock.Any(), "golang/go").Return(15.0, nil)
	mockEventStore.EXPECT().PullRequestsForRepo(gomock.Any(), "golang/go").Return(prs, nil)

	router := newTestRouter(t, mockEventStore)

	req := httptest.NewRequest(http.MethodGet, "/metrics/pr-average/golang/go", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response PRAverageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "golang/go", response.Repository)
	assert.Equal(t, 15.0, response.AverageTimeSeconds)
	assert.Equal(t, 2, response.TotalPullRequests)
}

func TestRouter_TopRepos(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEventStore := storemocks.NewMockEventStore(ctrl)
	mockEventStore.EXPECT().
		TopRepos(gomock.Any(), 3).
		Return([]stores.RepoEventCount{
			{RepoName: "golang/go", Count: 12},
			{RepoName: "rust-lang/rust", Count: 7},
		}, nil)

	router := newTestRouter(t, mockEventStore)

	req := httptest.NewRequest(http.MethodGet, "/repos/top?limit=3", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var top []stores.RepoEventCount
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &top))
	require.Len(t, top, 2)
	assert.Equal(t, "golang/go", top[0].RepoName)
}

func TestRouter_TopRepos_DefaultLimit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEventStore := storemocks.NewMockEventStore(ctrl)
	mockEventStore.EXPECT().TopRepos(gomock.Any(), 10).Return(nil, nil)

	router := newTestRouter(t, mockEventStore)

	req := httptest.NewRequest(http.MethodGet, "/repos/top", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_RepoEvents(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEventStore := storemocks.NewMockEventStore(ctrl)
	mockEventStore.EXPECT().
		EventsForRepo(gomock.Any(), "golang/go").
		Return([]stores.EventSummary{
			{EventID: "2", Action: "opened", EventType: models.EventTypePullRequest},
			{EventID: "1", Action: "", EventType: "WatchEvent"},
		}, nil)

	router := newTestRouter(t, mockEventStore)

	req := httptest.NewRequest(http.MethodGet, "/repos/golang/go/events", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var events []stores.EventSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, "2", events[0].EventID)
}

func TestRouter_RepoEvents_NotImplementedBackend(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger, err := loggers.New("info")
	require.NoError(t, err)
	memory := stores.NewMemoryStore(logger)

	router := newTestRouter(t, memory)

	req := httptest.NewRequest(http.MethodGet, "/repos/golang/go/events", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotImplemented, rr.Code)

	var errorResponse ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
	assert.Equal(t, "STO_1001", errorResponse.ErrorCode)
}

func TestRouter_RepoEventCount(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEventStore := storemocks.NewMockEventStore(ctrl)
	mockEventStore.EXPECT().CountByRepo(gomock.Any(), "golang/go").Return(42, nil)

	router := newTestRouter(t, mockEventStore)

	req := httptest.NewRequest(http.MethodGet, "/debug/repo-events/golang/go", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response RepoEventCountResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "golang/go", response.Repository)
	assert.Equal(t, 42, response.EventCount)
}

func TestRouter_Health_AlwaysOK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEventStore := storemocks.NewMockEventStore(ctrl)
	// a disconnected backend still yields 200 with a degraded payload
	mockEventStore.EXPECT().
		Health(gomock.Any()).
		Return(&stores.StoreHealth{IsConnected: false, BackendType: stores.BackendClickHouse})

	router := newTestRouter(t, mockEventStore)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var health stores.StoreHealth
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.False(t, health.IsConnected)
	assert.Equal(t, stores.BackendClickHouse, health.BackendType)
}

func TestRouter_PrometheusEndpoint(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newTestRouter(t, storemocks.NewMockEventStore(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}
