package dashboard

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/emberwatch/emberwatch/pkg/types"
	"github.com/emberwatch/emberwatch/server/internal/store"
)

func TestServeHTTP_UsesInjectedClock(t *testing.T) {
	st, err := store.New(4)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	st.Append(types.Reading{
		Status: types.StatusNormal, Temperature: 22.5, Gas: 3000,
		Timestamp: "2025-12-17 15:59:00",
	})

	h := New(st, 20)
	h.now = func() time.Time {
		return time.Date(2025, 12, 17, 16, 0, 0, 0, time.UTC)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `<span id="updated">2025-12-17 16:00:00</span>`) {
		t.Error("page does not show the clock-derived updated timestamp")
	}
}
