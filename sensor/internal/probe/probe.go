package probe

import (
	"fmt"

	"github.com/emberwatch/emberwatch/pkg/types"
	"github.com/emberwatch/emberwatch/sensor/internal/config"
)

// Sample is a single measurement taken from a probe.
type Sample struct {
	Temperature float64
	Gas         int
}

// Probe is a source of samples. Read blocks until a sample is available or
// the read fails.
type Probe interface {
	Read() (Sample, error)
}

// New builds the probe selected by cfg.Type.
func New(cfg config.ProbeConfig) (Probe, error) {
	switch cfg.Type {
	case config.ProbeSim:
		return newSim(cfg), nil
	case config.ProbeDHT22:
		return newDHT22(cfg)
	default:
		return nil, fmt.Errorf("unknown probe type %q", cfg.Type)
	}
}

// Classify returns the status for a sample: "danger" when temperature or
// gas exceeds its threshold, "normal" otherwise.
func Classify(s Sample, th config.ThresholdConfig) string {
	if s.Temperature > th.TemperatureMax || s.Gas > th.GasMax {
		return types.StatusDanger
	}
	return types.StatusNormal
}
