package stats

import (
	"testing"

	"github.com/emberwatch/emberwatch/pkg/types"
	"github.com/emberwatch/emberwatch/server/internal/store"
)

func newStore(t *testing.T, statuses ...string) *store.Store {
	t.Helper()
	st, err := store.New(100)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	for i, status := range statuses {
		st.Append(types.Reading{
			Status:      status,
			Temperature: 20.0 + float64(i),
			Gas:         3800,
			Timestamp:   "2025-12-17 16:00:00",
		})
	}
	return st
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(newStore(t))
	if s.DangerCount != 0 || s.NormalCount != 0 || s.TotalLogs != 0 {
		t.Errorf("counts: got %+v, want all zero", s)
	}
	if s.Current != nil {
		t.Errorf("Current: got %+v, want nil", s.Current)
	}
}

func TestCompute_Counts(t *testing.T) {
	s := Compute(newStore(t,
		types.StatusNormal, types.StatusNormal, types.StatusNormal,
		types.StatusDanger, types.StatusDanger,
	))
	if s.NormalCount != 3 {
		t.Errorf("NormalCount: got %d, want 3", s.NormalCount)
	}
	if s.DangerCount != 2 {
		t.Errorf("DangerCount: got %d, want 2", s.DangerCount)
	}
	if s.TotalLogs != 5 {
		t.Errorf("TotalLogs: got %d, want 5", s.TotalLogs)
	}
}

func TestCompute_CountsSumToTotal(t *testing.T) {
	st := newStore(t)
	seq := []string{
		types.StatusDanger, types.StatusNormal, types.StatusDanger,
		types.StatusDanger, types.StatusNormal,
	}
	for _, status := range seq {
		st.Append(types.Reading{Status: status})
		s := Compute(st)
		if s.DangerCount+s.NormalCount != s.TotalLogs {
			t.Fatalf("danger %d + normal %d != total %d",
				s.DangerCount, s.NormalCount, s.TotalLogs)
		}
	}
}

func TestCompute_CurrentIsLastAccepted(t *testing.T) {
	s := Compute(newStore(t, types.StatusNormal, types.StatusDanger))
	if s.Current == nil {
		t.Fatal("Current: got nil")
	}
	if s.Current.Status != types.StatusDanger {
		t.Errorf("Current.Status: got %q, want danger", s.Current.Status)
	}
}

func TestCompute_AfterClear(t *testing.T) {
	st := newStore(t, types.StatusDanger, types.StatusNormal)
	st.Clear()

	s := Compute(st)
	if s.TotalLogs != 0 || s.Current != nil {
		t.Errorf("after clear: got %+v, want empty with nil Current", s)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	st := newStore(t, types.StatusNormal, types.StatusDanger, types.StatusDanger)
	a := Compute(st)
	b := Compute(st)
	if a.DangerCount != b.DangerCount || a.NormalCount != b.NormalCount ||
		a.TotalLogs != b.TotalLogs || *a.Current != *b.Current {
		t.Errorf("repeated Compute differs: %+v vs %+v", a, b)
	}
}

func TestCompute_ReflectsEviction(t *testing.T) {
	st, _ := store.New(3)
	for _, status := range []string{
		types.StatusNormal, types.StatusDanger, types.StatusNormal, types.StatusDanger,
	} {
		st.Append(types.Reading{Status: status})
	}

	s := Compute(st)
	if s.TotalLogs != 3 {
		t.Fatalf("TotalLogs: got %d, want 3", s.TotalLogs)
	}
	if s.DangerCount != 2 || s.NormalCount != 1 {
		t.Errorf("counts: danger %d normal %d, want 2/1", s.DangerCount, s.NormalCount)
	}
}
