// internal/publish/mqtt.go
package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/ddelgado/simtempctl/internal/monitor"
)

// Publisher forwards captured samples to an MQTT broker as JSON.
// Delivery is best effort: the capture loop must never stall on a slow
// broker, so callers log publish failures and move on.
type Publisher struct {
	client mqtt.Client
	topic  string
	device string
}

// Config is the minimal broker config the publisher needs.
type Config struct {
	Broker   string // e.g. tcp://localhost:1883
	Topic    string
	DeviceID string // identifies this sensor in the payload
	Timeout  time.Duration
}

// sampleMessage is the wire payload for one sample.
type sampleMessage struct {
	DeviceID    string  `json:"device_id"`
	TimestampNS uint64  `json:"timestamp_ns"`
	TempC       float64 `json:"temp_c"`
	Alert       bool    `json:"alert"`
}

const defaultConnectTimeout = 5 * time.Second

// New connects to the broker and returns a ready publisher.
func New(cfg Config) (*Publisher, error) {
	if cfg.Broker == "" {
		return nil, errors.New("publish: broker required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("publish: topic required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultConnectTimeout
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID("simtempctl-" + uuid.New().String()[:8]).
		SetConnectTimeout(cfg.Timeout)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("publish: connect %s: %w", cfg.Broker, token.Error())
	}

	return &Publisher{client: client, topic: cfg.Topic, device: cfg.DeviceID}, nil
}

// Publish sends one sample to the configured topic (QoS 0).
func (p *Publisher) Publish(s monitor.Sample) error {
	payload, err := json.Marshal(sampleMessage{
		DeviceID:    p.device,
		TimestampNS: s.TimestampNS,
		TempC:       s.Celsius(),
		Alert:       s.Alert,
	})
	if err != nil {
		return fmt.Errorf("publish: marshal: %w", err)
	}

	token := p.client.Publish(p.topic, 0, false, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("publish: %w", token.Error())
	}

	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
