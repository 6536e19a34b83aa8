// internal/publish/mqtt_test.go
package publish

import (
	"encoding/json"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ddelgado/simtempctl/internal/monitor"
)

// ---- fake client ----

type fakeToken struct{}

func (fakeToken) Wait() bool                       { return true }
func (fakeToken) WaitTimeout(_ time.Duration) bool { return true }
func (fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (fakeToken) Error() error { return nil }

// fakeClient records publishes; every other method is unreachable in tests.
type fakeClient struct {
	mqtt.Client

	topic   string
	payload []byte
}

func (f *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	f.topic = topic
	f.payload = payload.([]byte)
	return fakeToken{}
}

// ---- tests ----

func TestPublish_PayloadShape(t *testing.T) {
	fake := &fakeClient{}
	p := &Publisher{client: fake, topic: "simtemp/samples", device: "simtemp0"}

	err := p.Publish(monitor.Sample{
		TimestampNS: 1_000_000_000,
		TempMilliC:  41200,
		Alert:       true,
	})
	if err != nil {
		t.Fatalf("Publish() err=%v", err)
	}

	if fake.topic != "simtemp/samples" {
		t.Fatalf("topic=%q", fake.topic)
	}

	var msg sampleMessage
	if err := json.Unmarshal(fake.payload, &msg); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if msg.DeviceID != "simtemp0" || msg.TimestampNS != 1_000_000_000 || !msg.Alert {
		t.Fatalf("payload=%+v", msg)
	}
	if msg.TempC != 41.2 {
		t.Fatalf("temp_c=%v", msg.TempC)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{Topic: "t"}); err == nil {
		t.Fatal("expected error for missing broker")
	}
	if _, err := New(Config{Broker: "tcp://localhost:1883"}); err == nil {
		t.Fatal("expected error for missing topic")
	}
}
