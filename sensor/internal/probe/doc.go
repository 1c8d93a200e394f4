// Package probe produces temperature and gas samples and classifies them
// against the configured danger thresholds.
//
// Two probe types are available:
//   - sim: a pseudo-random generator that hovers around configured base
//     values and occasionally emits an anomalous spike
//   - dht22: a DHT22 temperature/humidity sensor read over GPIO. The DHT22
//     has no gas channel, so gas readings fall back to the configured base
//     value.
//
// Classify applies the danger rule: a sample is "danger" when temperature
// or gas exceeds its threshold, "normal" otherwise.
package probe
