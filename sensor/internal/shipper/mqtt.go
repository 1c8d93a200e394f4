package shipper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/emberwatch/emberwatch/pkg/types"
	"github.com/emberwatch/emberwatch/sensor/internal/config"
)

const (
	mqttKeepAlive         = 60 * time.Second
	mqttPingTimeout       = 10 * time.Second
	mqttConnectTimeout    = 10 * time.Second
	mqttDisconnectQuiesce = 250 // milliseconds
)

// mqttSender publishes readings as JSON to the configured topic at QoS 1.
type mqttSender struct {
	client mqtt.Client
	topic  string
}

func newMQTTSender(ctx context.Context, cfg config.MQTTConfig) (*mqttSender, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password())
	}
	opts.SetKeepAlive(mqttKeepAlive)
	opts.SetPingTimeout(mqttPingTimeout)
	opts.SetAutoReconnect(true)
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		slog.Warn("shipper: mqtt connection lost", "broker", cfg.Broker, "err", err)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("connect to %s: timeout", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Broker, err)
	}
	return &mqttSender{client: client, topic: cfg.Topic}, nil
}

func (m *mqttSender) Send(ctx context.Context, r types.Reading) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal reading: %w", err)
	}

	token := m.client.Publish(m.topic, 1, false, payload)

	deadline, ok := ctx.Deadline()
	wait := sendTimeout
	if ok {
		wait = time.Until(deadline)
	}
	if !token.WaitTimeout(wait) {
		return fmt.Errorf("publish to %s: timeout", m.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", m.topic, err)
	}
	return nil
}

func (m *mqttSender) Close() {
	m.client.Disconnect(mqttDisconnectQuiesce)
}
