package poller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github-stats/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Check(t *testing.T) {
	t.Parallel()

	var gotEtag string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)
		gotEtag = r.Header.Get(headerIfNoneMatch)

		w.Header().Set(headerPollInterval, "30")
		if gotEtag == `W/"current"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	state := models.NewClientState()
	changed, interval, err := client.Check(context.Background(), state)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 30, interval)
	assert.Empty(t, gotEtag, "first probe carries no conditional header")

	state.ETag = `W/"current"`
	changed, interval, err = client.Check(context.Background(), state)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 30, interval)
	assert.Equal(t, `W/"current"`, gotEtag)
}

func TestClient_Fetch(t *testing.T) {
	t.Parallel()

	payload := `[{"id":"1","type":"WatchEvent","repo":{"id":7,"name":"a/b"},"created_at":"2026-08-29T10:00:00Z"}]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, `W/"old"`, r.Header.Get(headerIfNoneMatch))
		assert.Equal(t, "Thu, 28 Aug 2026 10:00:00 GMT", r.Header.Get(headerIfModifiedSince))

		w.Header().Set(headerETag, `W/"new"`)
		w.Header().Set(headerLastModified, "Fri, 29 Aug 2026 10:00:00 GMT")
		w.Header().Set(headerPollInterval, "45")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	state := models.NewClientState()
	state.ETag = `W/"old"`
	state.LastModified = "Thu, 28 Aug 2026 10:00:00 GMT"

	result, err := client.Fetch(context.Background(), state)
	require.NoError(t, err)
	assert.False(t, result.NotModified)
	assert.Equal(t, []byte(payload), result.Payload)
	assert.Equal(t, `W/"new"`, result.ETag)
	assert.Equal(t, "Fri, 29 Aug 2026 10:00:00 GMT", result.LastModified)
	assert.Equal(t, 45, result.PollIntervalSec)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "1", result.Events[0].ID)
	assert.Equal(t, "a/b", result.Events[0].Repo.Name)
}

func TestClient_Fetch_NotModified(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerPollInterval, "90")
		w.WriteHeader(http.StatusNotModified)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.Fetch(context.Background(), models.NewClientState())
	require.NoError(t, err)
	assert.True(t, result.NotModified)
	assert.Equal(t, 90, result.PollIntervalSec)
	assert.Empty(t, result.Events)
}

func TestClient_Fetch_UpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Fetch(context.Background(), models.NewClientState())
	require.Error(t, err)
}

func TestClient_CapturesRateLimit(t *testing.T) {
	t.Parallel()

	reset := time.Date(2026, 8, 29, 11, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerRateRemaining, "3")
		w.Header().Set(headerRateReset, "1788001200")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	assert.Equal(t, -1, client.RateLimit().Remaining, "quota unknown before the first response")

	_, err := client.Fetch(context.Background(), models.NewClientState())
	require.NoError(t, err)

	rate := client.RateLimit()
	assert.Equal(t, 3, rate.Remaining)
	assert.Equal(t, reset, rate.Reset)
}
