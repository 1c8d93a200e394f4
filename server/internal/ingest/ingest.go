package ingest

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/emberwatch/emberwatch/pkg/types"
	"github.com/emberwatch/emberwatch/server/internal/metrics"
	"github.com/emberwatch/emberwatch/server/internal/store"
)

// Domain constraints on a candidate reading.
const (
	TemperatureMin = -50.0
	TemperatureMax = 150.0
	GasMin         = 0
	GasMax         = 10000
)

// AckMessage is the confirmation text returned on successful ingestion.
const AckMessage = "Status updated successfully"

// Candidate is a raw, not-yet-validated submission. Pointer fields
// distinguish absent from zero-valued input. Gas arrives as a float so a
// non-integral value is a field error rather than a decode failure.
type Candidate struct {
	Status      *string  `json:"status"`
	Temperature *float64 `json:"temperature"`
	Gas         *float64 `json:"gas"`
	Timestamp   string   `json:"timestamp,omitempty"`
}

// FieldError names one violated constraint.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError aggregates every failing field of a candidate.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Reason
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Ack is the acknowledgement returned to the caller on success.
type Ack struct {
	Message   string        `json:"message"`
	Timestamp string        `json:"timestamp"`
	Data      types.Reading `json:"data"`
}

// Validate checks a candidate against the domain constraints and returns the
// normalized Reading. now supplies the system clock for timestamp
// assignment; a caller-supplied timestamp is carried through verbatim.
//
// On failure the returned error is a *ValidationError listing every violated
// field. No state is touched either way.
func Validate(c Candidate, now time.Time) (types.Reading, error) {
	var fields []FieldError

	var status string
	switch {
	case c.Status == nil:
		fields = append(fields, FieldError{"status", "required"})
	case *c.Status != types.StatusDanger && *c.Status != types.StatusNormal:
		fields = append(fields, FieldError{"status",
			fmt.Sprintf("must be %q or %q", types.StatusDanger, types.StatusNormal)})
	default:
		status = *c.Status
	}

	var temp float64
	switch {
	case c.Temperature == nil:
		fields = append(fields, FieldError{"temperature", "required"})
	case *c.Temperature < TemperatureMin || *c.Temperature > TemperatureMax:
		fields = append(fields, FieldError{"temperature",
			fmt.Sprintf("must be between %g and %g", TemperatureMin, TemperatureMax)})
	default:
		temp = roundTemperature(*c.Temperature)
	}

	var gas int
	switch {
	case c.Gas == nil:
		fields = append(fields, FieldError{"gas", "required"})
	case *c.Gas != math.Trunc(*c.Gas):
		fields = append(fields, FieldError{"gas", "must be an integer"})
	case *c.Gas < GasMin || *c.Gas > GasMax:
		fields = append(fields, FieldError{"gas",
			fmt.Sprintf("must be between %d and %d", GasMin, GasMax)})
	default:
		gas = int(*c.Gas)
	}

	if len(fields) > 0 {
		return types.Reading{}, &ValidationError{Fields: fields}
	}

	ts := c.Timestamp
	if ts == "" {
		ts = types.FormatTimestamp(now)
	}

	return types.Reading{
		Status:      status,
		Temperature: temp,
		Gas:         gas,
		Timestamp:   ts,
	}, nil
}

// roundTemperature rounds to 2 decimal places, halves away from zero:
// 0.125 → 0.13, -0.125 → -0.13.
func roundTemperature(v float64) float64 {
	return math.Round(v*100) / 100
}

// Service orchestrates validate → append for each incoming reading. It is
// the only component allowed to write to the store.
type Service struct {
	store   *store.Store
	metrics *metrics.Metrics
	now     func() time.Time // injectable for deterministic tests
}

// NewService wires a Service to the store. m may be nil when metrics are
// disabled (tests).
func NewService(st *store.Store, m *metrics.Metrics) *Service {
	return &Service{store: st, metrics: m, now: time.Now}
}

// Ingest validates c and, on success, appends the normalized reading and
// returns the acknowledgement. On failure it propagates the
// *ValidationError unchanged with no state change.
func (s *Service) Ingest(c Candidate) (Ack, error) {
	now := s.now()

	r, err := Validate(c, now)
	if err != nil {
		s.metrics.ReadingRejected()
		return Ack{}, err
	}

	s.store.Append(r)
	s.metrics.ReadingAccepted(r.Status)

	slog.Info("ingest: status updated",
		"status", r.Status,
		"temperature", r.Temperature,
		"gas", r.Gas,
	)

	return Ack{
		Message:   AckMessage,
		Timestamp: types.FormatTimestamp(now),
		Data:      r,
	}, nil
}

// Clear empties the store and returns the number of readings removed.
func (s *Service) Clear() int {
	n := s.store.Clear()
	slog.Warn("ingest: history cleared", "removed", n)
	return n
}
