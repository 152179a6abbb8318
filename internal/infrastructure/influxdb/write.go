package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteCallEvent records one call lifecycle transition.
//
// The write is non-blocking; data is batched and sent asynchronously.
// openCalls is the number of open calls after the transition, which
// gives dashboards a load curve without querying the core.
//
// Example:
//
//	client.WriteCallEvent("Leito 01", "Emergencia", "nova-chamada", 3)
func (c *Client) WriteCallEvent(leito, criticality, event string, openCalls int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"call_events",
		map[string]string{
			"leito":       leito,
			"criticidade": criticality,
			"event":       event,
		},
		map[string]interface{}{
			"open_calls": openCalls,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteCallDuration records how long a call stayed open, from intake to
// closure. Response-time reporting is built entirely on this series.
func (c *Client) WriteCallDuration(leito, criticality string, seconds float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"call_duration",
		map[string]string{
			"leito":       leito,
			"criticidade": criticality,
		},
		map[string]interface{}{
			"seconds": seconds,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
// Use for measurements that don't fit the helper methods.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
