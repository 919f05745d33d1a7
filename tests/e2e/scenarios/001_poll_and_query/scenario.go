package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	prEventsPerRepo = 5     // PullRequestEvents generated per repository
	watchEvents     = 12    // WatchEvents generated in total
	prGapSeconds    = 120   // Fixed gap between consecutive PRs of one repo
	feedPort        = 19080 // Port this scenario serves the fake upstream feed on
)

var repos = []string{"golang/go", "rust-lang/rust", "ziglang/zig"}

// ### End - fixed configs

type feedEvent struct {
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

// main runs the e2e scenario: 001_poll_and_query
//
// This scenario plays the upstream event feed for a locally running
// github-stats service and then verifies the service's query API against the
// deterministic data it served.
//
// What it tests:
//   - Conditional polling: first GET returns the full page with an ETag,
//     subsequent conditional requests are answered 304 Not Modified
//   - Allowlist filtering, batch collapse and idempotent ingestion (the page
//     carries duplicates and a non-allowlisted PushEvent)
//   - GET /metrics/events windowed counts
//   - GET /metrics/pr-average/{owner}/{name} average PR interval
//   - GET /debug/repo-events/{owner}/{name} per-repo counts
//   - GET /health
//
// How to run:
//  1. start this scenario: it serves the feed on :19080 and waits
//  2. start the service with
//     GHSTATS_POLLER_URL=http://localhost:19080/events and a poll interval
//     small enough for one cycle to happen quickly
//  3. the scenario polls the service's API until the data appears, verifies
//     it and exits 0 on success
//
// Expected results:
//   - every repo reports exactly prEventsPerRepo PR events plus its share of
//     watch events
//   - the PR average for every repo is exactly prGapSeconds
//   - repeated polls do not inflate any count (the feed stays unchanged, so
//     every cycle after the first is a 304 no-op)
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the github-stats API server
	waitFor := 3 * time.Minute         // How long to wait for the service to ingest the feed

	events := generateFeed()
	payload, err := json.Marshal(events)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: failed to marshal feed: %v\n", err)
		os.Exit(1)
	}

	var conditionalHits int64
	var mu sync.Mutex

	etag := `W/"scenario-feed-v1"`
	feedHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Etag", etag)
		w.Header().Set("X-Poll-Interval", "5")
		if r.Header.Get("If-None-Match") == etag {
			mu.Lock()
			conditionalHits++
			mu.Unlock()
			w.WriteHeader(http.StatusNotModified)
			return
		}
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write(payload)
	})

	feedServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", feedPort),
		Handler:           feedHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := feedServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "ERROR: feed server failed: %v\n", err)
			os.Exit(1)
		}
	}()
	fmt.Printf("serving %d events on :%d/events, waiting for the service to ingest them...\n", len(events), feedPort)

	// Wait until the first repo's count matches, then verify everything.
	deadline := time.Now().Add(waitFor)
	for {
		if time.Now().After(deadline) {
			fmt.Fprintln(os.Stderr, "ERROR: service never ingested the feed")
			os.Exit(1)
		}
		count, err := fetchRepoCount(baseURL, repos[0])
		if err == nil && count >= prEventsPerRepo {
			break
		}
		time.Sleep(2 * time.Second)
	}

	failures := 0

	// Per-repo counts: PRs plus an even share of the watch events.
	watchPerRepo := watchEvents / len(repos)
	for _, repo := range repos {
		count, err := fetchRepoCount(baseURL, repo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL: repo count for %s: %v\n", repo, err)
			failures++
			continue
		}
		want := prEventsPerRepo + watchPerRepo
		if count != want {
			fmt.Fprintf(os.Stderr, "FAIL: repo %s has %d events, want %d\n", repo, count, want)
			failures++
		}
	}

	// PR averages: consecutive PRs are exactly prGapSeconds apart.
	for _, repo := range repos {
		avg, total, err := fetchPRAverage(baseURL, repo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL: pr average for %s: %v\n", repo, err)
			failures++
			continue
		}
		if total != prEventsPerRepo {
			fmt.Fprintf(os.Stderr, "FAIL: repo %s reports %d PRs, want %d\n", repo, total, prEventsPerRepo)
			failures++
		}
		if avg != prGapSeconds {
			fmt.Fprintf(os.Stderr, "FAIL: repo %s average is %v, want %d\n", repo, avg, prGapSeconds)
			failures++
		}
	}

	// Windowed counts over a generous window must see the whole feed and no
	// more; the PushEvent and the duplicates must not be counted.
	counts, err := fetchWindowCounts(baseURL, 120)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: window counts: %v\n", err)
		failures++
	} else {
		wantTotal := prEventsPerRepo*len(repos) + watchEvents
		if counts.Total != wantTotal {
			fmt.Fprintf(os.Stderr, "FAIL: window total is %d, want %d\n", counts.Total, wantTotal)
			failures++
		}
		if counts.ByType["PushEvent"] != 0 {
			fmt.Fprintf(os.Stderr, "FAIL: PushEvent leaked through the allowlist\n")
			failures++
		}
	}

	// Health must be connected.
	if err := checkHealth(baseURL); err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: health: %v\n", err)
		failures++
	}

	// The feed never changed after the first fetch, so by now at least one
	// poll cycle must have been answered conditionally.
	mu.Lock()
	hits := conditionalHits
	mu.Unlock()
	if hits == 0 {
		fmt.Fprintln(os.Stderr, "FAIL: service never sent a conditional request")
		failures++
	}

	_ = feedServer.Close()

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "scenario failed with %d failure(s)\n", failures)
		os.Exit(1)
	}
	fmt.Println("scenario passed")
}

// generateFeed builds a deterministic page: per repo a run of PRs exactly
// prGapSeconds apart, a spread of WatchEvents, one duplicated id and one
// PushEvent that must be filtered out.
func generateFeed() []feedEvent {
	base := time.Now().UTC().Add(-30 * time.Minute)
	var events []feedEvent
	id := 0
	nextID := func() string {
		id++
		return strconv.Itoa(1000000 + id)
	}

	for repoIdx, repo := range repos {
		for i := 0; i < prEventsPerRepo; i++ {
			e := feedEvent{ID: nextID(), Type: "PullRequestEvent"}
			e.Repo.ID = int64(100 + repoIdx)
			e.Repo.Name = repo
			e.Payload.Action = "opened"
			e.CreatedAt = base.Add(time.Duration(i*prGapSeconds) * time.Second).Format(time.RFC3339)
			events = append(events, e)
		}
	}

	for i := 0; i < watchEvents; i++ {
		e := feedEvent{ID: nextID(), Type: "WatchEvent"}
		repoIdx := i % len(repos)
		e.Repo.ID = int64(100 + repoIdx)
		e.Repo.Name = repos[repoIdx]
		e.Payload.Action = "started"
		e.CreatedAt = base.Add(time.Duration(i) * time.Second).Format(time.RFC3339)
		events = append(events, e)
	}

	// a duplicate of the first event and a non-allowlisted type
	events = append(events, events[0])
	push := feedEvent{ID: nextID(), Type: "PushEvent"}
	push.Repo.ID = 100
	push.Repo.Name = repos[0]
	push.CreatedAt = base.Format(time.RFC3339)
	events = append(events, push)

	return events
}

func fetchRepoCount(baseURL, repo string) (int, error) {
	var response struct {
		Repository string `json:"repository"`
		EventCount int    `json:"eventCount"`
	}
	if err := getJSON(fmt.Sprintf("%s/debug/repo-events/%s", baseURL, repo), &response); err != nil {
		return 0, err
	}
	return response.EventCount, nil
}

func fetchPRAverage(baseURL, repo string) (float64, int, error) {
	var response struct {
		AverageTimeSeconds float64 `json:"averageTimeSeconds"`
		TotalPullRequests  int     `json:"totalPullRequests"`
	}
	if err := getJSON(fmt.Sprintf("%s/metrics/pr-average/%s", baseURL, repo), &response); err != nil {
		return 0, 0, err
	}
	return response.AverageTimeSeconds, response.TotalPullRequests, nil
}

type windowCounts struct {
	ByType map[string]int `json:"eventCounts"`
	Total  int            `json:"totalEvents"`
}

func fetchWindowCounts(baseURL string, offsetMinutes int) (*windowCounts, error) {
	var counts windowCounts
	if err := getJSON(fmt.Sprintf("%s/metrics/events?offset=%d", baseURL, offsetMinutes), &counts); err != nil {
		return nil, err
	}
	return &counts, nil
}

func checkHealth(baseURL string) error {
	var health struct {
		IsConnected bool `json:"isConnected"`
	}
	if err := getJSON(baseURL+"/health", &health); err != nil {
		return err
	}
	if !health.IsConnected {
		return fmt.Errorf("backend not connected")
	}
	return nil
}

func getJSON(url string, v any) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
