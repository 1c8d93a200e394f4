package dashboard

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/emberwatch/emberwatch/server/internal/api"
	"github.com/emberwatch/emberwatch/server/internal/store"
)

//go:embed dashboard.html
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "dashboard.html"))

// Handler renders the dashboard page from the current store contents.
type Handler struct {
	store       *store.Store
	recentLimit int
	now         func() time.Time
}

// New creates a dashboard Handler showing the last recentLimit readings.
func New(st *store.Store, recentLimit int) *Handler {
	return &Handler{store: st, recentLimit: recentLimit, now: time.Now}
}

// pageData is what the template receives: the live payload plus a marker
// for the "no data yet" state, which renders distinctly from any reading.
type pageData struct {
	api.LiveResponse
	HasData bool
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	// The ServeMux "/" pattern is a catch-all; anything else is a 404.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	live := api.BuildLive(h.store, h.recentLimit, h.now())
	data := pageData{LiveResponse: live, HasData: live.Stats.CurrentStatus != nil}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		slog.Error("dashboard: render failed", "err", err)
	}
}
