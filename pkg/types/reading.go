package types

import "time"

// Status values a Reading may carry. The two are exhaustive and mutually
// exclusive; the validator rejects anything else.
const (
	StatusDanger = "danger"
	StatusNormal = "normal"
)

// TimestampLayout is the single timestamp representation used everywhere:
// system-assigned timestamps, acknowledgements, and API responses.
const TimestampLayout = "2006-01-02 15:04:05"

// Reading is one accepted sensor observation. Readings are immutable once
// accepted — the store hands out copies, never shared slices.
type Reading struct {
	// Status is the danger/normal classification reported by the device.
	Status string `json:"status"`

	// Temperature in degrees Celsius, rounded to 2 decimal places.
	Temperature float64 `json:"temperature"`

	// Gas concentration in parts per million.
	Gas int `json:"gas"`

	// Timestamp in TimestampLayout format. Caller-supplied timestamps are
	// carried through verbatim; missing ones are assigned at acceptance time.
	Timestamp string `json:"timestamp"`
}

// FormatTimestamp renders t in the canonical layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
