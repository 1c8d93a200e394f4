package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emberwatch/emberwatch/pkg/types"
	"github.com/emberwatch/emberwatch/server/internal/dashboard"
	"github.com/emberwatch/emberwatch/server/internal/store"
)

func newStore(t *testing.T, readings ...types.Reading) *store.Store {
	t.Helper()
	st, err := store.New(100)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	for _, r := range readings {
		st.Append(r)
	}
	return st
}

func render(t *testing.T, st *store.Store) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	dashboard.New(st, 20).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	return rr
}

func TestRender_Empty(t *testing.T) {
	rr := render(t, newStore(t))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}
	if !strings.Contains(rr.Body.String(), "no data") {
		t.Error("empty store: page should show the no-data marker")
	}
}

func TestRender_WithReadings(t *testing.T) {
	rr := render(t, newStore(t,
		types.Reading{Status: types.StatusNormal, Temperature: 22.5, Gas: 3800, Timestamp: "2025-12-17 16:00:00"},
		types.Reading{Status: types.StatusDanger, Temperature: 55.25, Gas: 5000, Timestamp: "2025-12-17 16:00:05"},
	))

	body := rr.Body.String()
	if !strings.Contains(body, "status-danger") {
		t.Error("page should mark the current danger status")
	}
	if !strings.Contains(body, "55.25") {
		t.Error("page should show the current temperature")
	}
	if !strings.Contains(body, "5000") {
		t.Error("page should show the current gas level")
	}
	if !strings.Contains(body, "2025-12-17 16:00:00") {
		t.Error("page should list the older reading")
	}
}

func TestRender_UnknownPathIs404(t *testing.T) {
	rr := httptest.NewRecorder()
	dashboard.New(newStore(t), 20).ServeHTTP(rr,
		httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}

func TestRender_MethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	dashboard.New(newStore(t), 20).ServeHTTP(rr,
		httptest.NewRequest(http.MethodPost, "/", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", rr.Code)
	}
}
