package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Lumen Core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Project  ProjectConfig  `yaml:"project"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// EngineConfig contains render-loop settings.
type EngineConfig struct {
	// FPS is the target frame rate for the output loop.
	FPS int `yaml:"fps"`
}

// ProjectConfig describes the structure to build at startup.
type ProjectConfig struct {
	Name     string          `yaml:"name"`
	Fixtures []FixtureConfig `yaml:"fixtures"`
}

// FixtureConfig describes one fixture: its shape, placement and
// output destination. Type selects which shape fields apply.
type FixtureConfig struct {
	// Type is the shape kind: "strip", "grid", or "arc".
	Type  string `yaml:"type"`
	Label string `yaml:"label"`

	// Placement. Rotations are degrees.
	X     float32 `yaml:"x"`
	Y     float32 `yaml:"y"`
	Z     float32 `yaml:"z"`
	Yaw   float32 `yaml:"yaw"`
	Pitch float32 `yaml:"pitch"`
	Roll  float32 `yaml:"roll"`

	// Strip and arc.
	Count   int     `yaml:"count"`
	Spacing float32 `yaml:"spacing"`

	// Grid.
	Rows          int     `yaml:"rows"`
	Columns       int     `yaml:"columns"`
	RowSpacing    float32 `yaml:"row_spacing"`
	ColumnSpacing float32 `yaml:"column_spacing"`

	// Arc.
	Radius  float32 `yaml:"radius"`
	Degrees float32 `yaml:"degrees"`

	Output OutputConfig `yaml:"output"`
}

// OutputConfig contains a fixture's wire-protocol settings.
type OutputConfig struct {
	// Protocol is one of "none", "artnet", "sacn", "opc", "ddp",
	// "kinet". Empty means none.
	Protocol   string  `yaml:"protocol"`
	Host       string  `yaml:"host"`
	Universe   int     `yaml:"universe"`
	Channel    int     `yaml:"channel"`
	DataOffset int     `yaml:"data_offset"`
	Port       int     `yaml:"port"`
	Brightness float32 `yaml:"brightness"`
	Enabled    *bool   `yaml:"enabled"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// InfluxDBConfig contains InfluxDB telemetry settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: LUMENCORE_SECTION_KEY
// For example: LUMENCORE_MQTT_HOST, LUMENCORE_ENGINE_FPS
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			FPS: 30,
		},
		Project: ProjectConfig{
			Name: "Lumen",
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "lumencore",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		InfluxDB: InfluxDBConfig{
			BatchSize:     100,
			FlushInterval: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: LUMENCORE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Engine
	if v := os.Getenv("LUMENCORE_ENGINE_FPS"); v != "" {
		if fps, err := strconv.Atoi(v); err == nil {
			cfg.Engine.FPS = fps
		}
	}

	// MQTT
	if v := os.Getenv("LUMENCORE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("LUMENCORE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("LUMENCORE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("LUMENCORE_INFLUXDB_URL"); v != "" {
		cfg.InfluxDB.URL = v
	}
	if v := os.Getenv("LUMENCORE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Logging
	if v := os.Getenv("LUMENCORE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Engine.FPS < 1 || c.Engine.FPS > 240 {
		errs = append(errs, "engine.fps must be between 1 and 240")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled && c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required when mqtt is enabled")
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Token == "" {
			errs = append(errs, "influxdb.token is required when influxdb is enabled (set LUMENCORE_INFLUXDB_TOKEN environment variable)")
		}
	}

	for i, fc := range c.Project.Fixtures {
		if err := validateFixture(fc); err != nil {
			errs = append(errs, fmt.Sprintf("project.fixtures[%d]: %v", i, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// validateFixture checks one fixture entry's shape parameters.
func validateFixture(fc FixtureConfig) error {
	switch fc.Type {
	case "strip":
		if fc.Count < 1 {
			return fmt.Errorf("strip count must be at least 1, got %d", fc.Count)
		}
	case "grid":
		if fc.Rows < 1 || fc.Columns < 1 {
			return fmt.Errorf("grid dimensions must be at least 1x1, got %dx%d", fc.Rows, fc.Columns)
		}
	case "arc":
		if fc.Count < 1 {
			return fmt.Errorf("arc count must be at least 1, got %d", fc.Count)
		}
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown fixture type %q", fc.Type)
	}
	if fc.Output.Brightness < 0 || fc.Output.Brightness > 1 {
		return fmt.Errorf("output.brightness must be between 0 and 1, got %v", fc.Output.Brightness)
	}
	return nil
}

// GetFlushInterval returns the InfluxDB flush interval as a Duration.
func (c *Config) GetFlushInterval() time.Duration {
	return time.Duration(c.InfluxDB.FlushInterval) * time.Second
}

// FrameInterval returns the render-loop tick interval derived from the
// configured frame rate.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Engine.FPS)
}
