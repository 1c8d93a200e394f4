// Package api implements the HTTP surface of emberwatch-server.
//
// New(store, svc, version) returns an http.Handler that serves:
//
//	POST   /status      — submit a reading; 200 ack or 422 per-field errors
//	GET    /health      — service health, version, uptime
//	GET    /api/status  — latest reading; {"status":"unknown"} when empty
//	GET    /api/stats   — danger/normal/total counts + current reading
//	GET    /api/logs    — last N readings, newest first (?limit=, default 20)
//	DELETE /api/logs    — clear the history
//
// All endpoints respond with Content-Type: application/json and 405 for
// unsupported methods. JSON types are defined in types.go; the WebSocket hub
// reuses BuildLive for its broadcast payload. No external HTTP framework is
// used — CORS and access logging are wrapped around this handler in main.
package api
