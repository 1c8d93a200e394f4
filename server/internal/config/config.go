package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for the server configuration.
const (
	DefaultHTTPPort          = 8000
	DefaultMaxEntries        = 100
	DefaultRecentLimit       = 20
	DefaultBroadcastInterval = 5 * time.Second
	DefaultMQTTTopic         = "sensors/readings"
)

// Config holds the server-side configuration parsed from the `server:`
// section of config.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds all server-side settings.
type ServerConfig struct {
	// HTTPPort is the port the REST API, dashboard and WebSocket hub
	// listen on (default 8000).
	HTTPPort int `yaml:"http_port"`

	// History controls the in-memory reading log.
	History HistoryConfig `yaml:"history"`

	// Dashboard controls the live feed shape.
	Dashboard DashboardConfig `yaml:"dashboard"`

	// CORS configures cross-origin access to the REST surface.
	CORS CORSConfig `yaml:"cors"`

	// MQTT configures the optional broker ingest bridge.
	MQTT MQTTConfig `yaml:"mqtt"`
}

// HistoryConfig controls the bounded history log.
type HistoryConfig struct {
	// MaxEntries is the capacity of the reading log. Once full, each new
	// reading evicts the oldest. Must be at least 1. Default: 100.
	MaxEntries int `yaml:"max_entries"`
}

// DashboardConfig controls the dashboard and WebSocket live feed.
type DashboardConfig struct {
	// RecentLimit is how many readings the dashboard and live feed show.
	// Default: 20.
	RecentLimit int `yaml:"recent_limit"`

	// BroadcastInterval is how often the hub pushes updates to connected
	// clients. Default: 5s.
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`
}

// CORSConfig configures cross-origin access on the REST endpoints.
type CORSConfig struct {
	// AllowedOrigins lists origins permitted to call the API.
	// Default: ["*"].
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// MQTTConfig configures the optional MQTT ingest bridge. The bridge is
// disabled unless Enabled is true.
type MQTTConfig struct {
	Enabled bool `yaml:"enabled"`

	// Broker is the broker URL (e.g. tcp://localhost:1883).
	Broker string `yaml:"broker"`

	// Topic is the topic readings are published to. Default: sensors/readings.
	Topic string `yaml:"topic"`

	// ClientID identifies this subscriber to the broker.
	ClientID string `yaml:"client_id"`

	// Username is the literal broker username (safe to store in config).
	Username string `yaml:"username"`

	// PasswordEnv is the name of the environment variable that holds the
	// broker password.
	PasswordEnv string `yaml:"password_env"`
}

// Password returns the broker password resolved from the environment.
func (m MQTTConfig) Password() string {
	if m.PasswordEnv == "" {
		return ""
	}
	return os.Getenv(m.PasswordEnv)
}

// Load reads and parses the config file at path, returning the server
// configuration. Missing fields are filled with defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("server config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("server config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
			History: HistoryConfig{
				MaxEntries: DefaultMaxEntries,
			},
			Dashboard: DashboardConfig{
				RecentLimit:       DefaultRecentLimit,
				BroadcastInterval: DefaultBroadcastInterval,
			},
			CORS: CORSConfig{
				AllowedOrigins: []string{"*"},
			},
			MQTT: MQTTConfig{
				Topic:    DefaultMQTTTopic,
				ClientID: "emberwatch-server",
			},
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", cfg.Server.HTTPPort)
	}
	if cfg.Server.History.MaxEntries < 1 {
		return fmt.Errorf("server.history.max_entries must be at least 1, got %d",
			cfg.Server.History.MaxEntries)
	}
	if cfg.Server.Dashboard.RecentLimit < 1 {
		return fmt.Errorf("server.dashboard.recent_limit must be at least 1, got %d",
			cfg.Server.Dashboard.RecentLimit)
	}
	if cfg.Server.Dashboard.BroadcastInterval <= 0 {
		return fmt.Errorf("server.dashboard.broadcast_interval must be positive")
	}
	if cfg.Server.MQTT.Enabled && cfg.Server.MQTT.Broker == "" {
		return fmt.Errorf("server.mqtt.broker is required when mqtt is enabled")
	}
	return nil
}
