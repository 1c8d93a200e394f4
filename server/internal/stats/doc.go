// Package stats derives aggregate counts from the history store on demand.
// Nothing is cached: every Compute walks the current log once, so the
// result always reflects evictions and clears.
package stats
