// Package config loads the server configuration from the `server:` section
// of config.yaml (the `sensor:` key in the same file is ignored here).
//
// Config fields:
//   - HTTPPort            — REST API + dashboard + WebSocket port (default 8000)
//   - History.MaxEntries  — history log capacity, >= 1 (default 100)
//   - Dashboard.RecentLimit / Dashboard.BroadcastInterval — live feed shape
//   - CORS.AllowedOrigins — origins allowed on the REST surface (default *)
//   - MQTT.*              — optional broker ingest bridge settings
//
// Load(path) applies defaults before unmarshalling, then validates. The
// history capacity is fixed for the process lifetime; an invalid value is a
// startup error, never a runtime one.
package config
