//go:build integration

package mqtt

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/lumen-core/internal/infrastructure/config"
)

// End-to-end tests against a running Mosquitto broker at 127.0.0.1:1883,
// exercising the flows the engine and its consumers actually use: a
// controller sends fixture commands, a dashboard watches structure
// events and the status topic.
//
// Run with:
//   go test -tags=integration -count=1 -v ./internal/infrastructure/mqtt/...

func integrationConfig(clientID string) config.MQTTConfig {
	return config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: clientID,
			TLS:      false,
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     5,
		},
	}
}

// TestIntegration_CommandFlow plays the controller side: the engine
// subscribes to the command pattern, a controller addresses one
// fixture, and the engine extracts the fixture ID from the delivered
// topic the way the announce package does.
func TestIntegration_CommandFlow(t *testing.T) {
	engine, err := Connect(integrationConfig("lumencore-int-engine"))
	if err != nil {
		t.Fatalf("Connect() engine error = %v", err)
	}
	defer engine.Close()

	controller, err := Connect(integrationConfig("lumencore-int-controller"))
	if err != nil {
		t.Fatalf("Connect() controller error = %v", err)
	}
	defer controller.Close()

	type received struct {
		fixtureID string
		action    string
	}
	got := make(chan received, 1)
	var once sync.Once

	err = engine.Subscribe(TopicFixtureCommands, 1, func(topic string, payload []byte) error {
		var cmd struct {
			Action string `json:"action"`
		}
		if err := json.Unmarshal(payload, &cmd); err != nil {
			return err
		}
		once.Do(func() {
			got <- received{
				fixtureID: topic[strings.LastIndex(topic, "/")+1:],
				action:    cmd.Action,
			}
		})
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	err = controller.Publish(FixtureCommandTopic("6a1f0c42"),
		[]byte(`{"action":"brightness","value":0.25}`), 1, false)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case r := <-got:
		if r.fixtureID != "6a1f0c42" {
			t.Errorf("fixture ID = %q, want 6a1f0c42", r.fixtureID)
		}
		if r.action != "brightness" {
			t.Errorf("action = %q, want brightness", r.action)
		}
	case <-time.After(5 * time.Second):
		t.Error("timeout waiting for command")
	}
}

// TestIntegration_EventFlow plays the dashboard side: a consumer
// subscribed to structure events sees every event the engine publishes.
func TestIntegration_EventFlow(t *testing.T) {
	engine, err := Connect(integrationConfig("lumencore-int-engine-ev"))
	if err != nil {
		t.Fatalf("Connect() engine error = %v", err)
	}
	defer engine.Close()

	dashboard, err := Connect(integrationConfig("lumencore-int-dashboard"))
	if err != nil {
		t.Fatalf("Connect() dashboard error = %v", err)
	}
	defer dashboard.Close()

	var mu sync.Mutex
	seen := make(map[string]bool)

	record := func(topic string, _ []byte) error {
		mu.Lock()
		seen[topic] = true
		mu.Unlock()
		return nil
	}
	for _, topic := range []string{TopicStructureRegenerated, TopicFixtureAdded, TopicFixtureRemoved} {
		if err := dashboard.Subscribe(topic, 1, record); err != nil {
			t.Fatalf("Subscribe(%s) error = %v", topic, err)
		}
	}

	time.Sleep(100 * time.Millisecond)

	events := map[string][]byte{
		TopicFixtureAdded:         []byte(`{"id":"6a1f0c42","label":"front strip","points":50}`),
		TopicStructureRegenerated: []byte(`{"fixtures":1,"points":50,"duration_ms":1.2}`),
		TopicFixtureRemoved:       []byte(`{"id":"6a1f0c42","label":"front strip"}`),
	}
	for topic, payload := range events {
		if err := engine.Publish(topic, payload, 1, false); err != nil {
			t.Fatalf("Publish(%s) error = %v", topic, err)
		}
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		count := len(seen)
		mu.Unlock()
		if count == len(events) {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	for topic := range events {
		if !seen[topic] {
			t.Errorf("event on %s never delivered", topic)
		}
	}
}

// TestIntegration_GracefulOfflineStatus verifies Close publishes the
// graceful offline status so consumers can tell it from a crash LWT.
func TestIntegration_GracefulOfflineStatus(t *testing.T) {
	watcher, err := Connect(integrationConfig("lumencore-int-watcher"))
	if err != nil {
		t.Fatalf("Connect() watcher error = %v", err)
	}
	defer watcher.Close()

	statuses := make(chan statusEvent, 8)
	err = watcher.Subscribe(TopicSystemStatus, 1, func(_ string, payload []byte) error {
		var status statusEvent
		if err := json.Unmarshal(payload, &status); err != nil {
			return err
		}
		statuses <- status
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	engine, err := Connect(integrationConfig("lumencore-int-engine-status"))
	if err != nil {
		t.Fatalf("Connect() engine error = %v", err)
	}
	time.Sleep(200 * time.Millisecond)
	if err := engine.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case status := <-statuses:
			if status.Status == "offline" && status.Reason == "graceful_shutdown" {
				if status.ClientID != "lumencore-int-engine-status" {
					t.Errorf("client_id = %q, want lumencore-int-engine-status", status.ClientID)
				}
				return
			}
		case <-deadline:
			t.Fatal("graceful offline status never arrived")
		}
	}
}
