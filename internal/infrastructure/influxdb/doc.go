// Package influxdb records Lumen Core telemetry into InfluxDB v2.
//
// Two measurements are written: "regeneration" captures structure
// rebuild cost (fixture and point counts, duration), and "frames"
// captures output-loop throughput per wire protocol. Writes go through
// the official client's batched non-blocking API; batch failures reach
// the caller via SetOnError.
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//	client.WriteRegeneration(fixtures, points, elapsed)
//
// Batch size and flush interval come from the influxdb section of
// config.yaml.
package influxdb
