package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github-stats/internal/models"
)

const (
	headerIfNoneMatch     = "If-None-Match"
	headerIfModifiedSince = "If-Modified-Since"
	headerETag            = "Etag"
	headerLastModified    = "Last-Modified"
	headerPollInterval    = "X-Poll-Interval"
	headerRateRemaining   = "X-RateLimit-Remaining"
	headerRateReset       = "X-RateLimit-Reset"
)

// FetchResult carries everything one successful (or not-modified) fetch
// produced: the decoded events, the verbatim payload for archival, and the
// protocol metadata for the next conditional request.
type FetchResult struct {
	NotModified     bool
	Events          []models.RawEvent
	Payload         []byte
	ETag            string
	LastModified    string
	PollIntervalSec int // 0 when upstream sent no suggestion
}

// RateLimit is the last-observed upstream quota. Remaining is -1 until the
// first response has been seen.
type RateLimit struct {
	Remaining int
	Reset     time.Time
}

// Client is the conditional-fetch transport against the upstream event feed.
//
//go:generate mockgen -source=client.go -destination=./mocks/client_mock.go -package=mocks
type Client interface {
	// Check issues a conditional existence probe (HEAD). It reports whether
	// the feed changed since the stored token, plus any new poll interval.
	Check(ctx context.Context, state *models.ClientState) (changed bool, pollIntervalSec int, err error)

	// Fetch issues the full conditional GET. A not-modified response (a race
	// with Check) comes back as FetchResult{NotModified: true}.
	Fetch(ctx context.Context, state *models.ClientState) (*FetchResult, error)

	// RateLimit returns the quota observed on the most recent response.
	RateLimit() RateLimit
}

// httpClient talks to the upstream feed with net/http. It is used by a
// single polling actor, so the rate-limit bookkeeping needs no lock.
type httpClient struct {
	url  string
	http *http.Client

	lastRate RateLimit
}

func NewClient(url string) Client {
	return &httpClient{
		url:      url,
		http:     &http.Client{Timeout: 30 * time.Second},
		lastRate: RateLimit{Remaining: -1},
	}
}

func (c *httpClient) Check(ctx context.Context, state *models.ClientState) (bool, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.url, nil)
	if err != nil {
		return false, 0, err
	}
	if state.ETag != "" {
		req.Header.Set(headerIfNoneMatch, state.ETag)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, 0, fmt.Errorf("conditional probe failed: %w", err)
	}
	defer resp.Body.Close()
	c.captureRateLimit(resp)

	pollInterval := headerInt(resp, headerPollInterval)
	if resp.StatusCode == http.StatusNotModified {
		return false, pollInterval, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, 0, fmt.Errorf("conditional probe returned status %d", resp.StatusCode)
	}
	return true, pollInterval, nil
}

func (c *httpClient) Fetch(ctx context.Context, state *models.ClientState) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	if state.ETag != "" {
		req.Header.Set(headerIfNoneMatch, state.ETag)
	}
	if state.LastModified != "" {
		req.Header.Set(headerIfModifiedSince, state.LastModified)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()
	c.captureRateLimit(resp)

	if resp.StatusCode == http.StatusNotModified {
		return &FetchResult{
			NotModified:     true,
			PollIntervalSec: headerInt(resp, headerPollInterval),
		}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch returned status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read fetch body: %w", err)
	}

	var events []models.RawEvent
	if err := json.Unmarshal(payload, &events); err != nil {
		return nil, fmt.Errorf("failed to decode event payload: %w", err)
	}

	return &FetchResult{
		Events:          events,
		Payload:         payload,
		ETag:            resp.Header.Get(headerETag),
		LastModified:    resp.Header.Get(headerLastModified),
		PollIntervalSec: headerInt(resp, headerPollInterval),
	}, nil
}

func (c *httpClient) RateLimit() RateLimit {
	return c.lastRate
}

func (c *httpClient) captureRateLimit(resp *http.Response) {
	remaining := resp.Header.Get(headerRateRemaining)
	if remaining == "" {
		return
	}
	n, err := strconv.Atoi(remaining)
	if err != nil {
		return
	}
	c.lastRate.Remaining = n

	if reset, err := strconv.ParseInt(resp.Header.Get(headerRateReset), 10, 64); err == nil {
		c.lastRate.Reset = time.Unix(reset, 0).UTC()
	}
}

func headerInt(resp *http.Response, name string) int {
	n, err := strconv.Atoi(resp.Header.Get(name))
	if err != nil {
		return 0
	}
	return n
}
