// Package mqttingest bridges an MQTT broker into the ingestion service.
// Devices that publish readings to the configured topic go through the same
// validate → append path as REST submitters; rejected payloads are logged
// and dropped, never stored. The bridge subscribes on connect (and on every
// reconnect) and runs until its context is cancelled.
package mqttingest
