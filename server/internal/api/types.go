package api

import (
	"github.com/emberwatch/emberwatch/pkg/types"
	"github.com/emberwatch/emberwatch/server/internal/ingest"
)

// HealthResponse is the payload for GET /health.
type HealthResponse struct {
	Status        string  `json:"status"`
	Timestamp     string  `json:"timestamp"`
	Version       string  `json:"version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// StatsResponse is the payload for GET /api/stats.
type StatsResponse struct {
	DangerCount int `json:"danger_count"`
	NormalCount int `json:"normal_count"`
	TotalLogs   int `json:"total_logs"`

	// CurrentStatus is null until the first reading is accepted.
	CurrentStatus *types.Reading `json:"current_status"`
	Timestamp     string         `json:"timestamp"`
}

// LogsResponse is the payload for GET /api/logs. Logs are newest first,
// the order the dashboard displays them in.
type LogsResponse struct {
	Logs  []types.Reading `json:"logs"`
	Count int             `json:"count"`
}

// ClearResponse is the payload for DELETE /api/logs.
type ClearResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// UnknownStatus marks the explicit "no data yet" answer for GET /api/status,
// distinguishable from any valid reading by its status value.
type UnknownStatus struct {
	Status string `json:"status"`
}

// LiveResponse is the combined payload broadcast to WebSocket clients and
// rendered by the dashboard.
type LiveResponse struct {
	Stats StatsResponse   `json:"stats"`
	Logs  []types.Reading `json:"logs"`
}

// validationResponse is the 422 body for a rejected submission.
type validationResponse struct {
	Error  string              `json:"error"`
	Fields []ingest.FieldError `json:"fields"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
