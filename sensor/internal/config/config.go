package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// TransportHTTP ships readings with POST /status against server_url.
	TransportHTTP = "http"
	// TransportMQTT publishes readings to the configured MQTT topic.
	TransportMQTT = "mqtt"

	// ProbeSim is the built-in simulated sensor.
	ProbeSim = "sim"
	// ProbeDHT22 reads a DHT22 temperature sensor over GPIO.
	ProbeDHT22 = "dht22"

	DefaultServerURL          = "http://localhost:8000"
	DefaultInterval           = 5 * time.Second
	DefaultBufferSize         = 100
	DefaultBaseTemperature    = 27.0
	DefaultBaseGas            = 3200
	DefaultAnomalyProbability = 0.05
	DefaultTemperatureMax     = 40.0
	DefaultGasMax             = 4000
	DefaultMQTTTopic          = "sensors/readings"
	DefaultMQTTClientID       = "emberwatch-sensor"
)

// Config is the root of the sensor agent configuration file.
type Config struct {
	Sensor SensorConfig `yaml:"sensor"`
}

// SensorConfig configures the probe loop and the shipping transport.
type SensorConfig struct {
	Transport  string          `yaml:"transport"`
	ServerURL  string          `yaml:"server_url"`
	MQTT       MQTTConfig      `yaml:"mqtt"`
	Probe      ProbeConfig     `yaml:"probe"`
	Thresholds ThresholdConfig `yaml:"thresholds"`
	BufferSize int             `yaml:"buffer_size"`
}

// MQTTConfig configures the MQTT publisher used when transport is "mqtt".
type MQTTConfig struct {
	Broker      string `yaml:"broker"`
	Topic       string `yaml:"topic"`
	ClientID    string `yaml:"client_id"`
	Username    string `yaml:"username"`
	PasswordEnv string `yaml:"password_env"`
}

// Password resolves the broker password from the configured environment
// variable. Returns "" when password_env is unset.
func (m MQTTConfig) Password() string {
	if m.PasswordEnv == "" {
		return ""
	}
	return os.Getenv(m.PasswordEnv)
}

// ProbeConfig configures the sampling source.
type ProbeConfig struct {
	Type               string        `yaml:"type"`
	Pin                string        `yaml:"pin"`
	Interval           time.Duration `yaml:"interval"`
	BaseTemperature    float64       `yaml:"base_temperature"`
	BaseGas            int           `yaml:"base_gas"`
	AnomalyProbability float64       `yaml:"anomaly_probability"`
}

// ThresholdConfig holds the danger classification levels. A sample above
// either level is reported with status "danger".
type ThresholdConfig struct {
	TemperatureMax float64 `yaml:"temperature_max"`
	GasMax         int     `yaml:"gas_max"`
}

func defaults() Config {
	return Config{
		Sensor: SensorConfig{
			Transport: TransportHTTP,
			ServerURL: DefaultServerURL,
			MQTT: MQTTConfig{
				Topic:    DefaultMQTTTopic,
				ClientID: DefaultMQTTClientID,
			},
			Probe: ProbeConfig{
				Type:               ProbeSim,
				Interval:           DefaultInterval,
				BaseTemperature:    DefaultBaseTemperature,
				BaseGas:            DefaultBaseGas,
				AnomalyProbability: DefaultAnomalyProbability,
			},
			Thresholds: ThresholdConfig{
				TemperatureMax: DefaultTemperatureMax,
				GasMax:         DefaultGasMax,
			},
			BufferSize: DefaultBufferSize,
		},
	}
}

func (c *Config) validate() error {
	s := c.Sensor
	switch s.Transport {
	case TransportHTTP:
		if s.ServerURL == "" {
			return fmt.Errorf("sensor.server_url is required for http transport")
		}
	case TransportMQTT:
		if s.MQTT.Broker == "" {
			return fmt.Errorf("sensor.mqtt.broker is required for mqtt transport")
		}
	default:
		return fmt.Errorf("sensor.transport must be %q or %q, got %q", TransportHTTP, TransportMQTT, s.Transport)
	}
	switch s.Probe.Type {
	case ProbeSim:
	case ProbeDHT22:
		if s.Probe.Pin == "" {
			return fmt.Errorf("sensor.probe.pin is required for dht22 probe")
		}
	default:
		return fmt.Errorf("sensor.probe.type must be %q or %q, got %q", ProbeSim, ProbeDHT22, s.Probe.Type)
	}
	if s.Probe.Interval <= 0 {
		return fmt.Errorf("sensor.probe.interval must be positive, got %s", s.Probe.Interval)
	}
	if s.Probe.AnomalyProbability < 0 || s.Probe.AnomalyProbability > 1 {
		return fmt.Errorf("sensor.probe.anomaly_probability must be in [0, 1], got %g", s.Probe.AnomalyProbability)
	}
	if s.BufferSize < 1 {
		return fmt.Errorf("sensor.buffer_size must be at least 1, got %d", s.BufferSize)
	}
	return nil
}

// Load reads, defaults and validates the sensor configuration at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
