// Package store owns the bounded in-memory history of accepted readings.
// It provides a thread-safe append-only log with FIFO eviction: once the
// configured capacity is reached, each append evicts the oldest entry.
// The latest reading is always the last element of the log.
package store
