// Package types defines shared Go types used by both the sensor agent and
// the server. A Reading is the canonical representation of one accepted
// sensor observation, identical in memory and on the wire (JSON).
package types
