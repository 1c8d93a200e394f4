// Package ws implements the WebSocket hub that feeds the live dashboard.
//
// Hub manages a set of connected clients and broadcasts the current stats
// plus the recent reading window on a configurable interval (default 5s).
//
// New(store, interval, recentLimit) creates a Hub.
// Hub.Run(ctx) starts the broadcast ticker — blocks until ctx is cancelled,
// then closes all active connections.
// Hub.ServeHTTP upgrades an HTTP connection to WebSocket, sends the current
// state immediately on connect, then streams updates on each tick.
//
// Message format sent to clients:
//
//	{
//	  "event": "update",
//	  "data":  { "stats": { ... }, "logs": [ ... ] }
//	}
//
// The upgrader accepts all origins; CORS policy is enforced on the REST
// surface, and the hub carries no write operations. Mounted at /ws/live.
package ws
