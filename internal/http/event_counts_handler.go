package http

import (
	"net/http"
	"strconv"

	"github-stats/internal/stores"
)

type eventCountsHandler struct {
	eventStore stores.EventStore
}

func NewEventCountsHandler(eventStore stores.EventStore) AppHttpHandler {
	return &eventCountsHandler{eventStore: eventStore}
}

// Handle processes GET /metrics/events?offset=N requests: per-type event
// counts for the trailing window of N minutes.
func (h *eventCountsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	offsetParam := r.URL.Query().Get("offset")
	if offsetParam == "" {
		return errInvalidQueryParam("offset query parameter is required")
	}
	offset, err := strconv.Atoi(offsetParam)
	if err != nil {
		return errInvalidQueryParam("offset must be an integer")
	}

	counts, err := h.eventStore.CountByWindow(r.Context(), offset)
	if err != nil {
		return err
	}
	return writeJSON(w, counts)
}
