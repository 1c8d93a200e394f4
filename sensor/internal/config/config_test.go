package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "sensor:\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := cfg.Sensor
	if s.Transport != TransportHTTP {
		t.Errorf("Transport = %q, want %q", s.Transport, TransportHTTP)
	}
	if s.ServerURL != DefaultServerURL {
		t.Errorf("ServerURL = %q, want %q", s.ServerURL, DefaultServerURL)
	}
	if s.Probe.Type != ProbeSim {
		t.Errorf("Probe.Type = %q, want %q", s.Probe.Type, ProbeSim)
	}
	if s.Probe.Interval != DefaultInterval {
		t.Errorf("Probe.Interval = %s, want %s", s.Probe.Interval, DefaultInterval)
	}
	if s.Thresholds.TemperatureMax != DefaultTemperatureMax {
		t.Errorf("Thresholds.TemperatureMax = %g, want %g", s.Thresholds.TemperatureMax, DefaultTemperatureMax)
	}
	if s.Thresholds.GasMax != DefaultGasMax {
		t.Errorf("Thresholds.GasMax = %d, want %d", s.Thresholds.GasMax, DefaultGasMax)
	}
	if s.BufferSize != DefaultBufferSize {
		t.Errorf("BufferSize = %d, want %d", s.BufferSize, DefaultBufferSize)
	}
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
sensor:
  transport: mqtt
  mqtt:
    broker: tcp://broker.local:1883
    topic: plant/floor2/readings
    client_id: floor2-sensor
    username: sensor
    password_env: SENSOR_MQTT_PASSWORD
  probe:
    type: dht22
    pin: GPIO4
    interval: 2s
    base_temperature: 24
    base_gas: 2800
    anomaly_probability: 0.1
  thresholds:
    temperature_max: 55
    gas_max: 6000
  buffer_size: 500
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := cfg.Sensor
	if s.Transport != TransportMQTT {
		t.Errorf("Transport = %q, want mqtt", s.Transport)
	}
	if s.MQTT.Broker != "tcp://broker.local:1883" {
		t.Errorf("MQTT.Broker = %q", s.MQTT.Broker)
	}
	if s.MQTT.Topic != "plant/floor2/readings" {
		t.Errorf("MQTT.Topic = %q", s.MQTT.Topic)
	}
	if s.Probe.Type != ProbeDHT22 || s.Probe.Pin != "GPIO4" {
		t.Errorf("Probe = %+v, want dht22 on GPIO4", s.Probe)
	}
	if s.Probe.Interval != 2*time.Second {
		t.Errorf("Probe.Interval = %s, want 2s", s.Probe.Interval)
	}
	if s.Thresholds.TemperatureMax != 55 || s.Thresholds.GasMax != 6000 {
		t.Errorf("Thresholds = %+v", s.Thresholds)
	}
	if s.BufferSize != 500 {
		t.Errorf("BufferSize = %d, want 500", s.BufferSize)
	}
}

func TestMQTTConfig_Password(t *testing.T) {
	t.Setenv("SENSOR_MQTT_PASSWORD", "hunter2")

	m := MQTTConfig{PasswordEnv: "SENSOR_MQTT_PASSWORD"}
	if got := m.Password(); got != "hunter2" {
		t.Errorf("Password() = %q, want hunter2", got)
	}

	m = MQTTConfig{}
	if got := m.Password(); got != "" {
		t.Errorf("Password() without password_env = %q, want empty", got)
	}
}

func TestLoad_InvalidTransport(t *testing.T) {
	path := writeConfig(t, "sensor:\n  transport: carrier-pigeon\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown transport")
	}
}

func TestLoad_MQTTWithoutBroker(t *testing.T) {
	path := writeConfig(t, "sensor:\n  transport: mqtt\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for mqtt transport without broker")
	}
}

func TestLoad_DHT22WithoutPin(t *testing.T) {
	path := writeConfig(t, "sensor:\n  probe:\n    type: dht22\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for dht22 probe without pin")
	}
}

func TestLoad_InvalidInterval(t *testing.T) {
	path := writeConfig(t, "sensor:\n  probe:\n    interval: -1s\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for negative interval")
	}
}

func TestLoad_InvalidAnomalyProbability(t *testing.T) {
	path := writeConfig(t, "sensor:\n  probe:\n    anomaly_probability: 1.5\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for anomaly probability above 1")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "sensor:\n  buffer_size: 10\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan Config, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, path, func(cfg Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before rewriting the file.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("sensor:\n  buffer_size: 42\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Sensor.BufferSize != 42 {
			t.Errorf("reloaded BufferSize = %d, want 42", cfg.Sensor.BufferSize)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	<-done
}
