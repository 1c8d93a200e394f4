package mqttingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/emberwatch/emberwatch/server/internal/config"
	"github.com/emberwatch/emberwatch/server/internal/ingest"
)

const (
	keepAlive         = 60 * time.Second
	pingTimeout       = 10 * time.Second
	connectTimeout    = 10 * time.Second
	disconnectQuiesce = 250 // milliseconds, per paho convention
)

// Bridge subscribes to the configured topic and feeds every payload into
// the ingestion service.
type Bridge struct {
	svc *ingest.Service
	cfg config.MQTTConfig
}

// New creates a Bridge writing through svc.
func New(svc *ingest.Service, cfg config.MQTTConfig) *Bridge {
	return &Bridge{svc: svc, cfg: cfg}
}

// Run connects to the broker, subscribes, and blocks until ctx is
// cancelled. Reconnection and re-subscription are handled by the paho
// client's auto-reconnect.
func (b *Bridge) Run(ctx context.Context) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(b.cfg.Broker)
	opts.SetClientID(b.cfg.ClientID)
	opts.SetUsername(b.cfg.Username)
	opts.SetPassword(b.cfg.Password())
	opts.SetKeepAlive(keepAlive)
	opts.SetPingTimeout(pingTimeout)
	opts.SetAutoReconnect(true)

	// Subscribe inside OnConnect so the subscription survives reconnects.
	opts.OnConnect = func(client mqtt.Client) {
		slog.Info("mqtt: connected", "broker", b.cfg.Broker, "topic", b.cfg.Topic)
		token := client.Subscribe(b.cfg.Topic, 1, func(_ mqtt.Client, msg mqtt.Message) {
			b.handleMessage(msg.Payload())
		})
		token.Wait()
		if err := token.Error(); err != nil {
			slog.Error("mqtt: subscribe failed", "topic", b.cfg.Topic, "err", err)
		}
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		slog.Warn("mqtt: connection lost", "broker", b.cfg.Broker, "err", err)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("mqtt: connect to %s timed out", b.cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt: connect to %s: %w", b.cfg.Broker, err)
	}

	<-ctx.Done()
	client.Disconnect(disconnectQuiesce)
	slog.Info("mqtt: bridge stopped")
	return nil
}

// handleMessage decodes one published payload and ingests it. Malformed or
// invalid payloads are logged and dropped — the broker offers no reply
// channel for per-field errors.
func (b *Bridge) handleMessage(payload []byte) {
	var c ingest.Candidate
	if err := json.Unmarshal(payload, &c); err != nil {
		slog.Warn("mqtt: dropping malformed payload", "err", err)
		return
	}
	if _, err := b.svc.Ingest(c); err != nil {
		slog.Warn("mqtt: dropping rejected reading", "err", err)
	}
}
