package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names used by the engine's telemetry points.
const (
	measurementRegeneration = "regeneration"
	measurementFrames       = "frames"
)

// WriteRegeneration records a structure rebuild: how many fixtures and
// points were promoted and how long the rebuild took. Non-blocking;
// the point is batched and sent asynchronously.
func (c *Client) WriteRegeneration(fixtures, points int, duration time.Duration) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(write.NewPoint(
		measurementRegeneration,
		nil,
		map[string]interface{}{
			"fixtures":    fixtures,
			"points":      points,
			"duration_ms": float64(duration.Microseconds()) / 1000,
		},
		time.Now(),
	))
}

// WriteFrameStats records output-loop throughput for one reporting
// interval: frames encoded and payload bytes sent, tagged by wire
// protocol.
func (c *Client) WriteFrameStats(protocol string, frames, bytes int) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(write.NewPoint(
		measurementFrames,
		map[string]string{"protocol": protocol},
		map[string]interface{}{
			"frames": frames,
			"bytes":  bytes,
		},
		time.Now(),
	))
}
