// Package metrics exposes Prometheus instrumentation for the server:
// accepted/rejected reading counters, the current history size, and a 0/1
// danger gauge derived from the latest reading. Handler() serves the
// standard text exposition at /metrics.
package metrics
