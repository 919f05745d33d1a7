package http

import "net/http"

// AppHttpHandler handles an HTTP request and returns an error when the
// response should be an error response.
type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}
