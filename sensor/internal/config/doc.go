// Package config loads and watches the sensor agent configuration file
// (config.yaml, `sensor:` section — the `server:` key is ignored here).
//
// Top-level types:
//   - Config{Sensor} — full tree parsed from YAML
//   - SensorConfig — transport (http|mqtt), server_url, mqtt, probe,
//     thresholds, buffer_size
//   - ProbeConfig — type (sim|dht22), pin, interval, base values and the
//     anomaly probability for the simulated probe
//   - ThresholdConfig — temperature/gas levels above which a sample is
//     classified danger
//
// Load(path) reads the YAML file, applies defaults (5s interval, 100
// buffer, http transport to localhost:8000, 40°C / 4000 ppm thresholds),
// then validates required fields and enums.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. It handles the rename→create
// pattern used by atomic-save editors by re-adding the watch after the
// event.
package config
