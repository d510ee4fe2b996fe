// Lumen Core - Volumetric Lighting Engine
//
// This is the main entry point for the Lumen Core application.
// Lumen Core models installations of addressable LED fixtures as a
// hierarchical 3-D point cloud and streams pixel data to them over
// Art-Net, sACN, OPC, DDP, or KiNET.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chewxy/math32"

	"github.com/nerrad567/lumen-core/internal/announce"
	"github.com/nerrad567/lumen-core/internal/fixture"
	"github.com/nerrad567/lumen-core/internal/infrastructure/config"
	"github.com/nerrad567/lumen-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/lumen-core/internal/infrastructure/logging"
	"github.com/nerrad567/lumen-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/lumen-core/internal/output"
	"github.com/nerrad567/lumen-core/internal/structure"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// statsFlushInterval is how often accumulated frame counts are written
// to telemetry.
const statsFlushInterval = 10 * time.Second

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Lumen Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Build the structure from the project's fixture list
	s := structure.New()
	s.SetLogger(log.Component("structure"))
	if err := loadFixtures(s, cfg, log); err != nil {
		return fmt.Errorf("loading fixtures: %w", err)
	}
	log.Info("structure loaded",
		"project", cfg.Project.Name,
		"fixtures", len(s.Fixtures()),
		"points", s.Size(),
	)

	// Connect to MQTT broker (optional)
	if cfg.MQTT.Enabled {
		mqttClient, err := mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetLogger(log.Component("mqtt"))
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		announcer := announce.New(mqttClient, byte(cfg.MQTT.QoS))
		announcer.SetLogger(log.Component("announce"))
		s.SetAnnouncer(announcer)
		if err := announcer.BindCommands(s); err != nil {
			return fmt.Errorf("binding fixture commands: %w", err)
		}
		log.Info("fixture command topics bound")
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var recorder frameRecorder
	if cfg.InfluxDB.Enabled {
		influxClient, err := influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		adapter := &telemetryAdapter{client: influxClient}
		s.SetTelemetry(adapter)
		recorder = adapter
	} else {
		log.Info("InfluxDB disabled")
	}

	log.Info("initialisation complete, starting output loop",
		"fps", cfg.Engine.FPS,
	)

	if err := outputLoop(ctx, s, cfg.FrameInterval(), recorder, log); err != nil {
		return fmt.Errorf("output loop: %w", err)
	}

	log.Info("Lumen Core stopped")
	return nil
}

// loadFixtures builds every configured fixture inside a bulk-load
// batch, so the model is assembled once at EndLoad rather than once per
// fixture. A fixture whose output host fails to resolve is loaded with
// output disabled; a fixture with invalid shape parameters aborts
// startup.
func loadFixtures(s *structure.Structure, cfg *config.Config, log *logging.Logger) error {
	s.BeginLoad()
	defer s.EndLoad()

	for i, fc := range cfg.Project.Fixtures {
		f, err := fixture.FromConfig(fc)
		if err != nil {
			if f == nil {
				return fmt.Errorf("fixture %d (%s): %w", i, fc.Label, err)
			}
			log.Warn("fixture output disabled",
				"fixture", fc.Label,
				"error", err,
			)
		}
		s.AddFixture(f)
	}
	return nil
}

// outputLoop drives the render ticker until the context is cancelled.
// Each tick renders a colour per model point and sends one frame per
// enabled fixture encoder. Sent frames are counted per protocol and
// flushed to the recorder every statsFlushInterval.
func outputLoop(ctx context.Context, s *structure.Structure, interval time.Duration, recorder frameRecorder, log *logging.Logger) error {
	conn, err := net.ListenUDP("udp", nil)
	if err != nil {
		return fmt.Errorf("opening UDP socket: %w", err)
	}
	defer conn.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	stats := output.NewFrameStats()
	statsTicker := time.NewTicker(statsFlushInterval)
	defer statsTicker.Stop()
	flushStats := func() {
		if recorder == nil {
			return
		}
		stats.Flush(recorder.RecordFrameStats)
	}

	start := time.Now()
	var colors []uint32

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			flushStats()
			return nil
		case <-statsTicker.C:
			flushStats()
		case <-ticker.C:
			m := s.Model()
			if len(m.Points) == 0 {
				continue
			}
			if len(colors) != len(m.Points) {
				colors = make([]uint32, len(m.Points))
			}
			renderFrame(colors, s, float32(time.Since(start).Seconds()))

			for _, f := range s.Fixtures() {
				enc := f.Encoder()
				if enc == nil || !enc.Enabled() || enc.Addr() == nil {
					continue
				}
				frame := enc.Frame(colors)
				if _, err := conn.WriteToUDP(frame, enc.Addr()); err != nil {
					log.Warn("frame send failed",
						"fixture", f.Label(),
						"addr", enc.Addr().String(),
						"error", err,
					)
					continue
				}
				stats.Record(enc.Protocol(), len(frame))
			}
		}
	}
}

// renderFrame fills the colour buffer with the built-in test pattern: a
// hue wheel swept along the model's normalised X axis. It stands in
// until an external pixel source is wired up.
func renderFrame(colors []uint32, s *structure.Structure, elapsed float32) {
	for _, p := range s.Model().Points {
		if p.Index < 0 || p.Index >= len(colors) {
			continue
		}
		hue := p.Xn + elapsed*0.1
		hue -= math32.Floor(hue)
		colors[p.Index] = hueToRGB(hue)
	}
}

// hueToRGB converts a hue in [0, 1) at full saturation and value to a
// packed 0xRRGGBB colour.
func hueToRGB(hue float32) uint32 {
	sector := hue * 6
	i := int(sector) % 6
	f := sector - math32.Floor(sector)

	var r, g, b float32
	switch i {
	case 0:
		r, g, b = 1, f, 0
	case 1:
		r, g, b = 1-f, 1, 0
	case 2:
		r, g, b = 0, 1, f
	case 3:
		r, g, b = 0, 1-f, 1
	case 4:
		r, g, b = f, 0, 1
	default:
		r, g, b = 1, 0, 1-f
	}

	return uint32(r*255)<<16 | uint32(g*255)<<8 | uint32(b*255)
}

// frameRecorder receives output-loop throughput counts. Nil when
// telemetry is disabled.
type frameRecorder interface {
	RecordFrameStats(protocol string, frames, bytes int)
}

// telemetryAdapter adapts the InfluxDB client to the structure's
// Telemetry interface and the output loop's frameRecorder.
type telemetryAdapter struct {
	client *influxdb.Client
}

// RecordRegeneration implements structure.Telemetry.
func (a *telemetryAdapter) RecordRegeneration(fixtures, points int, duration time.Duration) {
	a.client.WriteRegeneration(fixtures, points, duration)
}

// RecordFrameStats implements frameRecorder.
func (a *telemetryAdapter) RecordFrameStats(protocol string, frames, bytes int) {
	a.client.WriteFrameStats(protocol, frames, bytes)
}

// getConfigPath returns the configuration file path.
// Uses LUMENCORE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("LUMENCORE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
