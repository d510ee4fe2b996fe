package announce

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nerrad567/lumen-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/lumen-core/internal/structure"
)

// Publisher is the slice of the MQTT client the announcer needs.
// Satisfied by *mqtt.Client; mocked in tests.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// Logger defines the logging interface used by the Announcer.
type Logger interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// regenerationEvent is the JSON payload for model rebuild events.
type regenerationEvent struct {
	Fixtures   int     `json:"fixtures"`
	Points     int     `json:"points"`
	DurationMS float64 `json:"duration_ms"`
	Timestamp  string  `json:"timestamp"`
}

// fixtureEvent is the JSON payload for fixture add/remove events.
type fixtureEvent struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Points    int    `json:"points,omitempty"`
	Timestamp string `json:"timestamp"`
}

// command is the JSON payload accepted on fixture command topics.
type command struct {
	Action string          `json:"action"`
	Value  json.RawMessage `json:"value"`
}

// Announcer publishes structure events to the MQTT bus. It implements
// structure.Announcer.
type Announcer struct {
	pub    Publisher
	qos    byte
	logger Logger
}

// New creates an announcer publishing at the given QoS.
func New(pub Publisher, qos byte) *Announcer {
	return &Announcer{
		pub:    pub,
		qos:    qos,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the announcer.
func (a *Announcer) SetLogger(logger Logger) {
	a.logger = logger
}

// AnnounceRegeneration publishes a model rebuild event.
func (a *Announcer) AnnounceRegeneration(fixtures, points int, duration time.Duration) {
	a.publish(mqtt.TopicStructureRegenerated, regenerationEvent{
		Fixtures:   fixtures,
		Points:     points,
		DurationMS: float64(duration.Microseconds()) / 1000,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// AnnounceFixtureAdded publishes a fixture addition event.
func (a *Announcer) AnnounceFixtureAdded(id, label string, points int) {
	a.publish(mqtt.TopicFixtureAdded, fixtureEvent{
		ID:        id,
		Label:     label,
		Points:    points,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// AnnounceFixtureRemoved publishes a fixture removal event.
func (a *Announcer) AnnounceFixtureRemoved(id, label string) {
	a.publish(mqtt.TopicFixtureRemoved, fixtureEvent{
		ID:        id,
		Label:     label,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *Announcer) publish(topic string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		a.logger.Error("marshalling announce event", "topic", topic, "error", err)
		return
	}
	if err := a.pub.Publish(topic, payload, a.qos, false); err != nil {
		a.logger.Warn("publishing announce event", "topic", topic, "error", err)
	}
}

// BindCommands subscribes to the fixture command topics and applies
// inbound commands to the structure's fixtures.
//
// Supported actions:
//   - "brightness": float in [0, 1]
//   - "enabled": bool
//   - "host": string output destination
//
// Handler errors (unknown fixture, malformed payload, unresolvable
// host) are returned to the MQTT layer for logging; they never stop
// the subscription.
func (a *Announcer) BindCommands(s *structure.Structure) error {
	return a.pub.Subscribe(mqtt.TopicFixtureCommands, a.qos, func(topic string, payload []byte) error {
		return a.handleCommand(s, topic, payload)
	})
}

func (a *Announcer) handleCommand(s *structure.Structure, topic string, payload []byte) error {
	id := topic[strings.LastIndex(topic, "/")+1:]
	f := s.FixtureByID(id)
	if f == nil {
		return fmt.Errorf("announce: unknown fixture %q", id)
	}

	var cmd command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return fmt.Errorf("announce: parsing command for %q: %w", id, err)
	}

	switch cmd.Action {
	case "brightness":
		var v float32
		if err := json.Unmarshal(cmd.Value, &v); err != nil {
			return fmt.Errorf("announce: brightness value: %w", err)
		}
		f.SetBrightness(v)
	case "enabled":
		var v bool
		if err := json.Unmarshal(cmd.Value, &v); err != nil {
			return fmt.Errorf("announce: enabled value: %w", err)
		}
		f.SetEnabled(v)
	case "host":
		var v string
		if err := json.Unmarshal(cmd.Value, &v); err != nil {
			return fmt.Errorf("announce: host value: %w", err)
		}
		if err := f.SetHost(v); err != nil {
			return fmt.Errorf("announce: setting host for %q: %w", id, err)
		}
	default:
		return fmt.Errorf("announce: unknown action %q", cmd.Action)
	}
	return nil
}
