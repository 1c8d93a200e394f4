package mqttingest

import (
	"testing"

	"github.com/emberwatch/emberwatch/pkg/types"
	"github.com/emberwatch/emberwatch/server/internal/config"
	"github.com/emberwatch/emberwatch/server/internal/ingest"
	"github.com/emberwatch/emberwatch/server/internal/store"
)

func newBridge(t *testing.T) (*Bridge, *store.Store) {
	t.Helper()
	st, err := store.New(10)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	b := New(ingest.NewService(st, nil), config.MQTTConfig{
		Broker: "localhost:1883",
		Topic:  "sensors/readings",
	})
	return b, st
}

func TestHandleMessage_IngestsValidPayload(t *testing.T) {
	b, st := newBridge(t)

	b.handleMessage([]byte(`{"status":"danger","temperature":55.5,"gas":5000}`))

	latest, ok := st.Latest()
	if !ok {
		t.Fatal("store: expected reading, got none")
	}
	if latest.Status != types.StatusDanger || latest.Gas != 5000 {
		t.Errorf("latest: got %+v", latest)
	}
	if latest.Timestamp == "" {
		t.Error("latest.Timestamp: missing system-assigned timestamp")
	}
}

func TestHandleMessage_DropsMalformedPayload(t *testing.T) {
	b, st := newBridge(t)

	b.handleMessage([]byte(`{"status":`))

	if st.Size() != 0 {
		t.Errorf("store size: got %d, want 0", st.Size())
	}
}

func TestHandleMessage_DropsInvalidReading(t *testing.T) {
	b, st := newBridge(t)

	b.handleMessage([]byte(`{"status":"critical","temperature":200,"gas":-1}`))

	if st.Size() != 0 {
		t.Errorf("store size after rejection: got %d, want 0", st.Size())
	}
}
