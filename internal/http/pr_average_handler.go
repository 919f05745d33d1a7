package http

import (
	"net/http"

	"github-stats/internal/stores"
)

// PRAverageResponse reports the average gap between a repository's pull
// requests.
type PRAverageResponse struct {
	Repository         string  `json:"repository"`
	AverageTimeSeconds float64 `json:"averageTimeSeconds"`
	TotalPullRequests  int     `json:"totalPullRequests"`
}

type prAverageHandler struct {
	eventStore stores.EventStore
}

func NewPRAverageHandler(eventStore stores.EventStore) AppHttpHandler {
	return &prAverageHandler{eventStore: eventStore}
}

// Handle processes GET /metrics/pr-average/{owner}/{name} requests.
func (h *prAverageHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	repo, err := repoName(r)
	if err != nil {
		return err
	}

	avg, err := h.eventStore.AveragePRInterval(r.Context(), repo)
	if err != nil {
		return err
	}
	prs, err := h.eventStore.PullRequestsForRepo(r.Context(), repo)
	if err != nil {
		return err
	}

	return writeJSON(w, PRAverageResponse{
		Repository:         repo,
		AverageTimeSeconds: avg,
		TotalPullRequests:  len(prs),
	})
}
