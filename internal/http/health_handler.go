package http

import (
	"net/http"

	"github-stats/internal/stores"
)

type healthHandler struct {
	eventStore stores.EventStore
}

func NewHealthHandler(eventStore stores.EventStore) AppHttpHandler {
	return &healthHandler{eventStore: eventStore}
}

// Handle processes GET /health requests. Storage trouble never yields an
// error status here; it degrades the payload to isConnected=false.
func (h *healthHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, h.eventStore.Health(r.Context()))
}
