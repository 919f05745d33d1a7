package http

import (
	"net/http"
	"strconv"

	"github-stats/internal/stores"
)

const defaultTopReposLimit = 10

type topReposHandler struct {
	eventStore stores.EventStore
}

func NewTopReposHandler(eventStore stores.EventStore) AppHttpHandler {
	return &topReposHandler{eventStore: eventStore}
}

// Handle processes GET /repos/top?limit=N requests.
func (h *topReposHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	limit := defaultTopReposLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		n, err := strconv.Atoi(limitParam)
		if err != nil {
			return errInvalidQueryParam("limit must be an integer")
		}
		limit = n
	}

	top, err := h.eventStore.TopRepos(r.Context(), limit)
	if err != nil {
		return err
	}
	return writeJSON(w, top)
}

type repoEventsHandler struct {
	eventStore stores.EventStore
}

func NewRepoEventsHandler(eventStore stores.EventStore) AppHttpHandler {
	return &repoEventsHandler{eventStore: eventStore}
}

// Handle processes GET /repos/{owner}/{name}/events requests.
func (h *repoEventsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	repo, err := repoName(r)
	if err != nil {
		return err
	}

	events, err := h.eventStore.EventsForRepo(r.Context(), repo)
	if err != nil {
		return err
	}
	return writeJSON(w, events)
}

// RepoEventCountResponse reports the stored event count of one repository.
type RepoEventCountResponse struct {
	Repository string `json:"repository"`
	EventCount int    `json:"eventCount"`
}

type repoEventCountHandler struct {
	eventStore stores.EventStore
}

func NewRepoEventCountHandler(eventStore stores.EventStore) AppHttpHandler {
	return &repoEventCountHandler{eventStore: eventStore}
}

// Handle processes GET /debug/repo-events/{owner}/{name} requests.
func (h *repoEventCountHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	repo, err := repoName(r)
	if err != nil {
		return err
	}

	count, err := h.eventStore.CountByRepo(r.Context(), repo)
	if err != nil {
		return err
	}
	return writeJSON(w, RepoEventCountResponse{Repository: repo, EventCount: count})
}
