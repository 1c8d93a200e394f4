package probe

import (
	"math"
	"math/rand"

	"github.com/emberwatch/emberwatch/sensor/internal/config"
)

type simProbe struct {
	base    config.ProbeConfig
	rnd     *rand.Rand
	anomaly func() bool
}

func newSim(cfg config.ProbeConfig) *simProbe {
	rnd := rand.New(rand.NewSource(rand.Int63()))
	return &simProbe{
		base: cfg,
		rnd:  rnd,
		anomaly: func() bool {
			return rnd.Float64() < cfg.AnomalyProbability
		},
	}
}

// Read never fails for the simulated probe.
func (p *simProbe) Read() (Sample, error) {
	temperature := p.base.BaseTemperature + p.rnd.Float64()*4.0 - 2.0 // ±2°C variation
	gas := p.base.BaseGas + p.rnd.Intn(401) - 200                     // ±200 ppm variation

	if p.anomaly() {
		// A fire-like event: hot and smoky together.
		temperature = 45.0 + p.rnd.Float64()*25.0
		gas = 4500 + p.rnd.Intn(4501)
	}

	if gas < 0 {
		gas = 0
	}
	return Sample{
		Temperature: math.Round(temperature*100) / 100,
		Gas:         gas,
	}, nil
}
