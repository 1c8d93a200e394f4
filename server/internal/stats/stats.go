package stats

import (
	"github.com/emberwatch/emberwatch/pkg/types"
	"github.com/emberwatch/emberwatch/server/internal/store"
)

// Statistics is one consistent view of the history log. DangerCount plus
// NormalCount always equals TotalLogs, since the validator admits no other
// status. Current is nil before any reading is accepted.
type Statistics struct {
	DangerCount int
	NormalCount int
	TotalLogs   int
	Current     *types.Reading
}

// Compute walks one snapshot of the store's contents. Current is derived
// from the same snapshot as the counts, so the two can never disagree.
func Compute(st *store.Store) Statistics {
	logs := st.All()

	out := Statistics{TotalLogs: len(logs)}
	for i := range logs {
		if logs[i].Status == types.StatusDanger {
			out.DangerCount++
		} else {
			out.NormalCount++
		}
	}
	if len(logs) > 0 {
		last := logs[len(logs)-1]
		out.Current = &last
	}
	return out
}
