package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const headerRequestID = "x-request-id"

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

// repoName builds the "owner/name" repository identifier from the URL.
func repoName(r *http.Request) (string, error) {
	owner := strings.TrimSpace(chi.URLParam(r, "owner"))
	name := strings.TrimSpace(chi.URLParam(r, "name"))
	if owner == "" || name == "" {
		return "", errInvalidQueryParam("repository owner and name are required")
	}
	return owner + "/" + name, nil
}
