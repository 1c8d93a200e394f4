package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/emberwatch/emberwatch/pkg/types"
	"github.com/emberwatch/emberwatch/server/internal/ingest"
	"github.com/emberwatch/emberwatch/server/internal/stats"
	"github.com/emberwatch/emberwatch/server/internal/store"
)

// DefaultRecentLimit is how many readings GET /api/logs returns when the
// caller does not pass ?limit=. Matches the dashboard's display window.
const DefaultRecentLimit = 20

// Handler is the HTTP handler for the REST endpoints. Writes go through the
// ingest service; reads come straight from the store.
type Handler struct {
	store   *store.Store
	svc     *ingest.Service
	version string
	started time.Time
	now     func() time.Time // injectable for deterministic tests
	mux     *http.ServeMux
}

// New creates a Handler wired to the given store and ingest service and
// registers all routes.
func New(st *store.Store, svc *ingest.Service, version string) *Handler {
	h := &Handler{
		store:   st,
		svc:     svc,
		version: version,
		started: time.Now(),
		now:     time.Now,
		mux:     http.NewServeMux(),
	}

	h.mux.HandleFunc("/status", h.submit)
	h.mux.HandleFunc("/health", h.health)
	h.mux.HandleFunc("/api/status", h.current)
	h.mux.HandleFunc("/api/stats", h.stats)
	h.mux.HandleFunc("/api/logs", h.logs)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// submit handles POST /status — validate and ingest one reading.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var c ingest.Candidate
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ack, err := h.svc.Ingest(c)
	if err != nil {
		var verr *ingest.ValidationError
		if errors.As(err, &verr) {
			jsonResp(w, http.StatusUnprocessableEntity, validationResponse{
				Error:  "validation failed",
				Fields: verr.Fields,
			})
			return
		}
		jsonErr(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	jsonResp(w, http.StatusOK, ack)
}

// health handles GET /health — liveness plus version and uptime.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	jsonResp(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		Timestamp:     types.FormatTimestamp(h.now()),
		Version:       h.version,
		UptimeSeconds: h.now().Sub(h.started).Seconds(),
	})
}

// current handles GET /api/status — the latest reading or an unknown marker.
func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	latest, ok := h.store.Latest()
	if !ok {
		jsonResp(w, http.StatusOK, UnknownStatus{Status: "unknown"})
		return
	}
	jsonResp(w, http.StatusOK, latest)
}

// stats handles GET /api/stats — aggregate counts plus the current reading.
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, BuildStats(h.store, h.now()))
}

// logs handles GET /api/logs (recent history, newest first) and
// DELETE /api/logs (clear all).
func (h *Handler) logs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit := DefaultRecentLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				jsonErr(w, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = n
		}
		logs := newestFirst(h.store.Recent(limit))
		jsonResp(w, http.StatusOK, LogsResponse{Logs: logs, Count: len(logs)})

	case http.MethodDelete:
		h.svc.Clear()
		jsonResp(w, http.StatusOK, ClearResponse{
			Message:   "All logs cleared successfully",
			Timestamp: types.FormatTimestamp(h.now()),
		})

	default:
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// --- payload builders -------------------------------------------------------

// BuildStats assembles the /api/stats payload from one store snapshot.
func BuildStats(st *store.Store, now time.Time) StatsResponse {
	s := stats.Compute(st)
	return StatsResponse{
		DangerCount:   s.DangerCount,
		NormalCount:   s.NormalCount,
		TotalLogs:     s.TotalLogs,
		CurrentStatus: s.Current,
		Timestamp:     types.FormatTimestamp(now),
	}
}

// BuildLive assembles the payload the WebSocket hub broadcasts: current
// stats plus the recent window, newest first.
func BuildLive(st *store.Store, limit int, now time.Time) LiveResponse {
	return LiveResponse{
		Stats: BuildStats(st, now),
		Logs:  newestFirst(st.Recent(limit)),
	}
}

// newestFirst reverses an acceptance-ordered window for display.
func newestFirst(logs []types.Reading) []types.Reading {
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
