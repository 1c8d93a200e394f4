package probe

import (
	"fmt"

	dht "github.com/MichaelS11/go-dht"

	"github.com/emberwatch/emberwatch/sensor/internal/config"
)

// readRetries bounds how many bad checksums a single read tolerates before
// giving up. DHT22 reads over GPIO fail often.
const readRetries = 11

type dhtProbe struct {
	dht *dht.DHT
	gas int
}

func newDHT22(cfg config.ProbeConfig) (*dhtProbe, error) {
	d, err := dht.NewDHT(cfg.Pin, dht.Celsius, "")
	if err != nil {
		return nil, fmt.Errorf("init dht22 on pin %s: %w", cfg.Pin, err)
	}
	return &dhtProbe{dht: d, gas: cfg.BaseGas}, nil
}

// Read samples the DHT22. The sensor has no gas channel, so the configured
// base gas value is reported instead.
func (p *dhtProbe) Read() (Sample, error) {
	_, temperature, err := p.dht.ReadRetry(readRetries)
	if err != nil {
		return Sample{}, fmt.Errorf("read dht22: %w", err)
	}
	return Sample{Temperature: temperature, Gas: p.gas}, nil
}
