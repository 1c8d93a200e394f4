package store

import (
	"errors"
	"sync"

	"github.com/emberwatch/emberwatch/pkg/types"
)

// ErrInvalidCapacity is returned by New when the configured capacity is
// below 1. Capacity is fixed at construction; there is no runtime failure
// path inside the store.
var ErrInvalidCapacity = errors.New("store: capacity must be at least 1")

// DefaultCapacity is the history bound used when none is configured.
const DefaultCapacity = 100

// Store is a thread-safe bounded log of accepted readings, ordered by
// acceptance order. Appends beyond capacity evict from the front, one entry
// per insertion, so len never exceeds the capacity.
type Store struct {
	mu   sync.RWMutex
	logs []types.Reading
	max  int
}

// New creates a Store holding at most max readings.
func New(max int) (*Store, error) {
	if max < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Store{
		logs: make([]types.Reading, 0, max),
		max:  max,
	}, nil
}

// Append inserts r at the most-recent position, evicting the oldest entry
// when the store is full. Atomic with respect to concurrent readers.
func (s *Store) Append(r types.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.logs) == s.max {
		// Slide left instead of reslicing so the backing array stays put.
		copy(s.logs, s.logs[1:])
		s.logs[len(s.logs)-1] = r
		return
	}
	s.logs = append(s.logs, r)
}

// Latest returns the most recently appended reading. The boolean is false
// when the log is empty.
func (s *Store) Latest() (types.Reading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.logs) == 0 {
		return types.Reading{}, false
	}
	return s.logs[len(s.logs)-1], true
}

// Recent returns a copy of the last min(n, Size) readings in acceptance
// order, oldest of the selected window first. n <= 0 returns an empty slice.
func (s *Store) Recent(n int) []types.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n < 0 {
		n = 0
	}
	if n > len(s.logs) {
		n = len(s.logs)
	}
	out := make([]types.Reading, n)
	copy(out, s.logs[len(s.logs)-n:])
	return out
}

// All returns a copy of the full log in acceptance order.
func (s *Store) All() []types.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Reading, len(s.logs))
	copy(out, s.logs)
	return out
}

// Clear empties the log and returns the number of readings removed.
// A subsequent Latest reports absent.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.logs)
	s.logs = s.logs[:0]
	return n
}

// Size returns the current number of readings, 0 <= Size <= Cap.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs)
}

// Cap returns the configured maximum history size.
func (s *Store) Cap() int {
	return s.max
}
