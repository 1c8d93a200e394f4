package api

import (
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader is the response header carrying the per-request ID.
const requestIDHeader = "X-Request-Id"

// RequestID assigns a fresh UUID to every request so log lines and client
// reports can be correlated. An ID supplied by the caller is kept.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}
