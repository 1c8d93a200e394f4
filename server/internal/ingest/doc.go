// Package ingest validates incoming sensor readings and appends accepted
// ones to the history store.
//
// Validate(candidate) checks every field and reports all violations at once
// as a *ValidationError — callers get the full list of problems, not just
// the first. Accepted temperatures are rounded half-away-from-zero to two
// decimal places.
//
// Service.Ingest is the single write path into the store: every transport
// (REST, MQTT) hands its decoded candidate to the same Service, so the store
// only ever contains validated readings.
package ingest
