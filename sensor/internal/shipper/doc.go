// Package shipper buffers readings and delivers them to the server over the
// configured transport (HTTP POST /status or an MQTT publish).
//
// Ship() is non-blocking: when the buffer is full the oldest reading is
// evicted so the freshest data survives an outage. Run() drains the buffer
// and reconnects with truncated exponential backoff when the transport
// fails. Readings the server rejects as invalid are discarded rather than
// retried.
package shipper
