// Package influxdb provides InfluxDB connectivity for WardCall Core.
//
// It wraps the official influxdb-client-go v2 library for connection
// management, telemetry writing, and health monitoring.
//
// # Purpose
//
// This package handles time-series data for ward operations:
//   - Call lifecycle events (opens and closures, with open-call counts)
//   - Call durations from intake to closure
//
// Charge nurses use this data to spot slow-response beds and staffing
// gaps; the operational store (SQLite) stays unburdened by analytics.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.WriteCallEvent("Leito 01", "Emergencia", "nova-chamada", 3)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes, so a slow
// or absent InfluxDB never delays a call broadcast.
package influxdb
